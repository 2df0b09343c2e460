package services

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"grants-governance/internal/ipfs"
	"grants-governance/internal/models"
)

type fakeGovernance struct {
	proposals []*models.Proposal
	byAddress map[common.Address]int64
	failIndex int64
	countErr  error
}

func (f *fakeGovernance) GetProposalID(ctx context.Context, beneficiary common.Address) (*big.Int, error) {
	return big.NewInt(f.byAddress[beneficiary]), nil
}

func (f *fakeGovernance) GetNumberOfProposals(ctx context.Context) (*big.Int, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return big.NewInt(int64(len(f.proposals))), nil
}

func (f *fakeGovernance) Proposal(ctx context.Context, index *big.Int) (*models.Proposal, error) {
	i := index.Int64()
	if i == f.failIndex {
		return nil, fmt.Errorf("execution reverted")
	}
	if i < 0 || i >= int64(len(f.proposals)) {
		return nil, fmt.Errorf("index %d out of range", i)
	}
	return f.proposals[i], nil
}

type fakeRegistry struct {
	digests map[common.Address][32]byte
	list    []common.Address
}

func (f *fakeRegistry) GetBeneficiary(ctx context.Context, beneficiary common.Address) ([32]byte, error) {
	return f.digests[beneficiary], nil
}

func (f *fakeRegistry) GetBeneficiaryList(ctx context.Context) ([]common.Address, error) {
	return f.list, nil
}

// fakeContent serves documents keyed by CID and records requests
type fakeContent struct {
	mu        sync.Mutex
	docs      map[string]models.BeneficiaryApplication
	requested []string
}

func (f *fakeContent) GetApplication(ctx context.Context, cid string) (*models.BeneficiaryApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, cid)
	doc, ok := f.docs[cid]
	if !ok {
		return nil, fmt.Errorf("%w: 404 fetching %s", ipfs.ErrUnexpectedStatus, cid)
	}
	return &doc, nil
}

func digestFor(n byte) [32]byte {
	var d [32]byte
	d[0] = n
	d[31] = n
	return d
}

func addressFor(n byte) common.Address {
	var a common.Address
	a[19] = n
	return a
}

func newProposal(index int64, proposalType models.ProposalType) *models.Proposal {
	n := byte(index + 1)
	return &models.Proposal{
		ID:             big.NewInt(index),
		Status:         models.ProposalStatusActive,
		Beneficiary:    addressFor(n),
		ApplicationCID: digestFor(n),
		Proposer:       addressFor(100 + n),
		StartTime:      big.NewInt(1_700_000_000 + index),
		YesCount:       big.NewInt(70),
		NoCount:        big.NewInt(30),
		VoterCount:     big.NewInt(5),
		ProposalType:   proposalType,
		ConfigurationOptions: models.ConfigurationOptions{
			VotingPeriod: big.NewInt(7 * 86400),
			VetoPeriod:   big.NewInt(2 * 86400),
			ProposalBond: big.NewInt(2000),
		},
	}
}

func docFor(n byte) models.BeneficiaryApplication {
	return models.BeneficiaryApplication{
		OrganizationName: fmt.Sprintf("Org %d", n),
		MissionStatement: fmt.Sprintf("Mission %d", n),
		ProfileImage:     fmt.Sprintf("QmProfile%d", n),
	}
}
