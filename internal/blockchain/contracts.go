package blockchain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BeneficiaryGovernanceABI is the read surface of the BeneficiaryGovernance contract
const BeneficiaryGovernanceABI = `[
	{"type":"function","name":"getProposalId","stateMutability":"view",
	 "inputs":[{"name":"_beneficiary","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getNumberOfProposals","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"proposals","stateMutability":"view",
	 "inputs":[{"name":"","type":"uint256"}],
	 "outputs":[
		{"name":"status","type":"uint8"},
		{"name":"beneficiary","type":"address"},
		{"name":"applicationCid","type":"bytes32"},
		{"name":"proposer","type":"address"},
		{"name":"startTime","type":"uint256"},
		{"name":"yesCount","type":"uint256"},
		{"name":"noCount","type":"uint256"},
		{"name":"voterCount","type":"uint256"},
		{"name":"proposalType","type":"uint8"},
		{"name":"votingPeriod","type":"uint256"},
		{"name":"vetoPeriod","type":"uint256"},
		{"name":"proposalBond","type":"uint256"}
	 ]}
]`

// BeneficiaryRegistryABI is the read surface of the BeneficiaryRegistry contract
const BeneficiaryRegistryABI = `[
	{"type":"function","name":"getBeneficiary","stateMutability":"view",
	 "inputs":[{"name":"_address","type":"address"}],
	 "outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"getBeneficiaryList","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"address[]"}]}
]`

var (
	governanceABI = mustParseABI(BeneficiaryGovernanceABI)
	registryABI   = mustParseABI(BeneficiaryRegistryABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("invalid contract ABI: " + err.Error())
	}
	return parsed
}
