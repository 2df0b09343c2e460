package handlers

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grants-governance/internal/blockchain"
	"grants-governance/internal/models"
)

// BeneficiaryReader is the read side of the beneficiary registry service
type BeneficiaryReader interface {
	GetBeneficiaryApplication(ctx context.Context, beneficiary common.Address) (*models.BeneficiaryApplication, error)
	GetAllBeneficiaryApplications(ctx context.Context) ([]models.BeneficiaryApplication, error)
}

// BeneficiaryHandler serves registered beneficiaries
type BeneficiaryHandler struct {
	beneficiaries BeneficiaryReader
	logger        *zap.Logger
}

// NewBeneficiaryHandler creates a new BeneficiaryHandler
func NewBeneficiaryHandler(beneficiaries BeneficiaryReader, logger *zap.Logger) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaries: beneficiaries, logger: logger}
}

// GetBeneficiaries lists every registered beneficiary's application
// GET /api/beneficiaries
func (h *BeneficiaryHandler) GetBeneficiaries(c *gin.Context) {
	apps, err := h.beneficiaries.GetAllBeneficiaryApplications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    apps,
		"count":   len(apps),
	})
}

// GetBeneficiary returns one registered beneficiary's application
// GET /api/beneficiaries/:address
func (h *BeneficiaryHandler) GetBeneficiary(c *gin.Context) {
	addr, err := blockchain.ParseAddress(c.Param("address"))
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadRequest)
		return
	}

	app, err := h.beneficiaries.GetBeneficiaryApplication(c.Request.Context(), addr)
	if err != nil {
		respondError(c, h.logger, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    app,
	})
}
