package models

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProposalStatus mirrors the governance contract's status enum
type ProposalStatus uint8

const (
	ProposalStatusPending ProposalStatus = iota
	ProposalStatusActive
	ProposalStatusVeto
	ProposalStatusPassed
	ProposalStatusFailed
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusPending:
		return "PENDING"
	case ProposalStatusActive:
		return "ACTIVE"
	case ProposalStatusVeto:
		return "VETO"
	case ProposalStatusPassed:
		return "PASSED"
	case ProposalStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText serializes the status by name
func (s ProposalStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ProposalType distinguishes nominations from takedowns
type ProposalType uint8

const (
	ProposalTypeNomination ProposalType = 0
	ProposalTypeTakedown   ProposalType = 1
)

func (t ProposalType) String() string {
	switch t {
	case ProposalTypeNomination:
		return "NOMINATION"
	case ProposalTypeTakedown:
		return "TAKEDOWN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText serializes the type by name
func (t ProposalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ConfigurationOptions are the durations (seconds) and bond fixed when a proposal is created
type ConfigurationOptions struct {
	VotingPeriod *big.Int
	VetoPeriod   *big.Int
	ProposalBond *big.Int
}

// Proposal is a point-in-time snapshot of an on-chain governance proposal
type Proposal struct {
	ID                   *big.Int
	Status               ProposalStatus
	Beneficiary          common.Address
	ApplicationCID       [32]byte
	Proposer             common.Address
	StartTime            *big.Int
	YesCount             *big.Int
	NoCount              *big.Int
	VoterCount           *big.Int
	ProposalType         ProposalType
	ConfigurationOptions ConfigurationOptions
}

// ErrDeadlineOutOfRange is returned when a proposal's periods sum past what a time.Time in milliseconds can hold
var ErrDeadlineOutOfRange = errors.New("stage deadline out of range")

// maxDeadlineSeconds keeps the deadline representable as Unix milliseconds
const maxDeadlineSeconds = math.MaxInt64 / 1000

// StageDeadline returns startTime + votingPeriod + vetoPeriod as an absolute time
func (p *Proposal) StageDeadline() (time.Time, error) {
	return StageDeadline(p.StartTime, p.ConfigurationOptions.VotingPeriod, p.ConfigurationOptions.VetoPeriod)
}

// StageDeadline sums the three second-resolution values exactly; nil operands count as zero.
// Sums outside ±maxDeadlineSeconds fail with ErrDeadlineOutOfRange instead of wrapping.
func StageDeadline(startTime, votingPeriod, vetoPeriod *big.Int) (time.Time, error) {
	sum := new(big.Int)
	for _, v := range []*big.Int{startTime, votingPeriod, vetoPeriod} {
		if v != nil {
			sum.Add(sum, v)
		}
	}
	if !sum.IsInt64() || sum.Int64() > maxDeadlineSeconds || sum.Int64() < -maxDeadlineSeconds {
		return time.Time{}, fmt.Errorf("%w: %s seconds", ErrDeadlineOutOfRange, sum)
	}
	return time.Unix(sum.Int64(), 0).UTC(), nil
}

// BeneficiaryProposal is the enriched view-model of a proposal and its application document
type BeneficiaryProposal struct {
	ID                 string         `json:"id"`
	Status             ProposalStatus `json:"status"`
	ProposalType       ProposalType   `json:"proposalType"`
	Proposer           string         `json:"proposer"`
	BeneficiaryAddress string         `json:"beneficiaryAddress"`
	ApplicationCID     string         `json:"applicationCid"`
	VotesFor           *big.Int       `json:"votesFor"`
	VotesAgainst       *big.Int       `json:"votesAgainst"`
	VoterCount         *big.Int       `json:"voterCount"`
	ProposalBond       *big.Int       `json:"proposalBond"`
	StageDeadline      time.Time      `json:"stageDeadline"`
	StageDeadlineMs    int64          `json:"stageDeadlineMs"`

	OrganizationName string      `json:"organizationName"`
	MissionStatement string      `json:"missionStatement"`
	ProofOfOwnership string      `json:"proofOfOwnership,omitempty"`
	ProfileImage     string      `json:"profileImage"`
	HeaderImage      string      `json:"headerImage"`
	AdditionalImages []string    `json:"additionalImages"`
	ImpactReports    []string    `json:"impactReports"`
	Links            SocialLinks `json:"links"`
}
