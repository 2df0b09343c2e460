package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grants-governance/internal/blockchain"
)

// ChainHandler reports on the node and contract configuration
type ChainHandler struct {
	chain     blockchain.ChainReader
	contracts map[string]common.Address
	logger    *zap.Logger
}

// NewChainHandler creates a new ChainHandler
func NewChainHandler(chain blockchain.ChainReader, contracts map[string]common.Address, logger *zap.Logger) *ChainHandler {
	return &ChainHandler{chain: chain, contracts: contracts, logger: logger}
}

// GetDiagnostics checks node connectivity and contract deployment
// GET /api/chain/diagnostics
func (h *ChainHandler) GetDiagnostics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result := blockchain.RunDiagnostics(ctx, h.chain, h.contracts, h.logger)

	status := http.StatusOK
	if !result.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
