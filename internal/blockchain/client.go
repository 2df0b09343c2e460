package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"grants-governance/internal/metrics"
)

// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses
var ErrInvalidAddress = errors.New("invalid ethereum address")

// ContractCaller executes read-only calls; *ethclient.Client satisfies it
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Dial connects to an EVM JSON-RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc %s: %w", rpcURL, err)
	}
	return client, nil
}

// ParseAddress validates and converts a hex address string
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// boundContract packs calls and unpacks results against one ABI at one address
type boundContract struct {
	address common.Address
	abi     abi.ABI
	caller  ContractCaller
	logger  *zap.Logger
}

func (b *boundContract) call(ctx context.Context, method string, args ...interface{}) (out []interface{}, err error) {
	defer func() {
		metrics.ContractCalls.WithLabelValues(method, metrics.Result(err)).Inc()
	}()

	input, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	to := b.address
	output, err := b.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		b.logger.Debug("Contract call failed",
			zap.String("contract", b.address.Hex()),
			zap.String("method", method),
			zap.Error(err))
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}

	out, err = b.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return out, nil
}
