package blockchain

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ChainReader is the node access diagnostics needs; *ethclient.Client satisfies it
type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// ContractCheck reports whether code is deployed at a configured contract address
type ContractCheck struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Deployed bool   `json:"deployed"`
	Error    string `json:"error,omitempty"`
}

// DiagnosticResult holds the result of a node connectivity diagnostic
type DiagnosticResult struct {
	RPCConnected bool            `json:"rpc_connected"`
	RPCError     string          `json:"rpc_error,omitempty"`
	ChainID      string          `json:"chain_id,omitempty"`
	LatestBlock  uint64          `json:"latest_block,omitempty"`
	Contracts    []ContractCheck `json:"contracts"`
	Timestamp    string          `json:"timestamp"`
}

// Healthy reports whether the node answered and every contract has code
func (r *DiagnosticResult) Healthy() bool {
	if !r.RPCConnected {
		return false
	}
	for _, c := range r.Contracts {
		if !c.Deployed {
			return false
		}
	}
	return true
}

// RunDiagnostics checks node connectivity and that each named contract is deployed
func RunDiagnostics(ctx context.Context, chain ChainReader, contracts map[string]common.Address, logger *zap.Logger) *DiagnosticResult {
	result := &DiagnosticResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Contracts: []ContractCheck{},
	}

	chainID, err := chain.ChainID(ctx)
	if err == nil {
		result.ChainID = chainID.String()
		result.LatestBlock, err = chain.BlockNumber(ctx)
	}
	if err != nil {
		result.RPCError = err.Error()
		logger.Warn("Chain diagnostics: RPC failed", zap.Error(err))
		return result
	}
	result.RPCConnected = true

	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		addr := contracts[name]
		check := ContractCheck{Name: name, Address: addr.Hex()}

		code, err := chain.CodeAt(ctx, addr, nil)
		if err != nil {
			check.Error = err.Error()
		} else {
			check.Deployed = len(code) > 0
		}
		if !check.Deployed {
			logger.Warn("Chain diagnostics: contract not deployed",
				zap.String("contract", name),
				zap.String("address", check.Address),
				zap.String("error", check.Error))
		}
		result.Contracts = append(result.Contracts, check)
	}

	return result
}
