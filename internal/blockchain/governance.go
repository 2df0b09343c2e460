package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"grants-governance/internal/models"
)

// GovernanceContract reads proposals from BeneficiaryGovernance
type GovernanceContract struct {
	contract *boundContract
}

// NewGovernanceContract binds the governance ABI to address
func NewGovernanceContract(address common.Address, caller ContractCaller, logger *zap.Logger) *GovernanceContract {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GovernanceContract{
		contract: &boundContract{address: address, abi: governanceABI, caller: caller, logger: logger},
	}
}

// GetProposalID returns the index of the proposal concerning beneficiary
func (g *GovernanceContract) GetProposalID(ctx context.Context, beneficiary common.Address) (*big.Int, error) {
	out, err := g.contract.call(ctx, "getProposalId", beneficiary)
	if err != nil {
		return nil, err
	}
	return bigIntAt(out, 0, "getProposalId")
}

// GetNumberOfProposals returns the total proposal count
func (g *GovernanceContract) GetNumberOfProposals(ctx context.Context) (*big.Int, error) {
	out, err := g.contract.call(ctx, "getNumberOfProposals")
	if err != nil {
		return nil, err
	}
	return bigIntAt(out, 0, "getNumberOfProposals")
}

// Proposal reads the proposal stored at index
func (g *GovernanceContract) Proposal(ctx context.Context, index *big.Int) (*models.Proposal, error) {
	out, err := g.contract.call(ctx, "proposals", index)
	if err != nil {
		return nil, err
	}
	if len(out) != 12 {
		return nil, fmt.Errorf("proposals: expected 12 values, got %d", len(out))
	}

	p := &models.Proposal{ID: new(big.Int).Set(index)}
	var ok bool
	var status, proposalType uint8

	if status, ok = out[0].(uint8); !ok {
		return nil, fmt.Errorf("proposals: unexpected status type %T", out[0])
	}
	if p.Beneficiary, ok = out[1].(common.Address); !ok {
		return nil, fmt.Errorf("proposals: unexpected beneficiary type %T", out[1])
	}
	if p.ApplicationCID, ok = out[2].([32]byte); !ok {
		return nil, fmt.Errorf("proposals: unexpected applicationCid type %T", out[2])
	}
	if p.Proposer, ok = out[3].(common.Address); !ok {
		return nil, fmt.Errorf("proposals: unexpected proposer type %T", out[3])
	}
	if proposalType, ok = out[8].(uint8); !ok {
		return nil, fmt.Errorf("proposals: unexpected proposalType type %T", out[8])
	}

	p.Status = models.ProposalStatus(status)
	p.ProposalType = models.ProposalType(proposalType)

	ints := []**big.Int{
		4:  &p.StartTime,
		5:  &p.YesCount,
		6:  &p.NoCount,
		7:  &p.VoterCount,
		9:  &p.ConfigurationOptions.VotingPeriod,
		10: &p.ConfigurationOptions.VetoPeriod,
		11: &p.ConfigurationOptions.ProposalBond,
	}
	for i, dst := range ints {
		if dst == nil {
			continue
		}
		if *dst, err = bigIntAt(out, i, "proposals"); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func bigIntAt(out []interface{}, i int, method string) (*big.Int, error) {
	if i >= len(out) {
		return nil, fmt.Errorf("%s: missing output %d", method, i)
	}
	v, ok := out[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected output %d type %T", method, i, out[i])
	}
	return v, nil
}
