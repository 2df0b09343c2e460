package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// RegistryContract reads beneficiaries from BeneficiaryRegistry
type RegistryContract struct {
	contract *boundContract
}

// NewRegistryContract binds the registry ABI to address
func NewRegistryContract(address common.Address, caller ContractCaller, logger *zap.Logger) *RegistryContract {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryContract{
		contract: &boundContract{address: address, abi: registryABI, caller: caller, logger: logger},
	}
}

// GetBeneficiary returns the bytes32 application digest registered for beneficiary
func (r *RegistryContract) GetBeneficiary(ctx context.Context, beneficiary common.Address) ([32]byte, error) {
	out, err := r.contract.call(ctx, "getBeneficiary", beneficiary)
	if err != nil {
		return [32]byte{}, err
	}
	if len(out) != 1 {
		return [32]byte{}, fmt.Errorf("getBeneficiary: expected 1 value, got %d", len(out))
	}
	digest, ok := out[0].([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("getBeneficiary: unexpected output type %T", out[0])
	}
	return digest, nil
}

// GetBeneficiaryList returns every registered beneficiary address
func (r *RegistryContract) GetBeneficiaryList(ctx context.Context) ([]common.Address, error) {
	out, err := r.contract.call(ctx, "getBeneficiaryList")
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("getBeneficiaryList: expected 1 value, got %d", len(out))
	}
	list, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("getBeneficiaryList: unexpected output type %T", out[0])
	}
	return list, nil
}
