package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grants-governance/internal/blockchain"
	"grants-governance/internal/models"
	"grants-governance/internal/views"
)

// ProposalReader is the read side of the governance proposal service
type ProposalReader interface {
	GetProposal(ctx context.Context, beneficiary common.Address) (*models.BeneficiaryProposal, error)
	GetProposals(ctx context.Context, isTakedown bool) ([]models.BeneficiaryProposal, error)
}

// ProposalHandler serves the nomination and takedown proposal pages
type ProposalHandler struct {
	proposals ProposalReader
	decimals  int32
	logger    *zap.Logger
	now       func() time.Time
}

// NewProposalHandler creates a new ProposalHandler
func NewProposalHandler(proposals ProposalReader, tokenDecimals int32, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposals: proposals,
		decimals:  tokenDecimals,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProposals lists nomination or takedown proposals as display cards
// GET /api/proposals?type=nomination|takedown
func (h *ProposalHandler) GetProposals(c *gin.Context) {
	var isTakedown bool
	switch c.DefaultQuery("type", "nomination") {
	case "nomination":
	case "takedown":
		isTakedown = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be nomination or takedown"})
		return
	}

	proposals, err := h.proposals.GetProposals(c.Request.Context(), isTakedown)
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views.NewProposalCards(proposals, h.now(), h.decimals),
		"count":   len(proposals),
	})
}

// GetProposal returns the proposal concerning one beneficiary
// GET /api/proposals/:address
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	addr, err := blockchain.ParseAddress(c.Param("address"))
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadRequest)
		return
	}

	proposal, err := h.proposals.GetProposal(c.Request.Context(), addr)
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views.NewProposalCard(*proposal, h.now(), h.decimals),
	})
}
