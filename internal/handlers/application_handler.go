package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"grants-governance/internal/auth"
	"grants-governance/internal/services"
	"grants-governance/internal/wizard"
)

// ApplicationHandler drives the beneficiary application wizard for the signed-in wallet
type ApplicationHandler struct {
	applications *services.ApplicationService
	logger       *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applications *services.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, logger: logger}
}

// GetSteps lists the wizard steps in order
// GET /api/applications/steps
func (h *ApplicationHandler) GetSteps(c *gin.Context) {
	steps := wizard.Steps()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.String()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": names})
}

// CreateApplication starts a new draft
// POST /api/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	wallet, ok := auth.GetWalletAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := h.applications.Create(c.Request.Context(), wallet)
	if err != nil {
		respondError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": state})
}

// GetApplications lists the wallet's drafts
// GET /api/applications?limit=&offset=
func (h *ApplicationHandler) GetApplications(c *gin.Context) {
	wallet, ok := auth.GetWalletAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	states, err := h.applications.List(c.Request.Context(), wallet, limit, offset)
	if err != nil {
		respondError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": states, "count": len(states)})
}

// GetApplication returns one draft with its wizard state
// GET /api/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	h.withDraft(c, http.StatusOK, func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error) {
		return h.applications.Get(ctx, id, wallet)
	})
}

// UpdateApplication merges field values into the draft form
// PATCH /api/applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.withDraft(c, http.StatusOK, func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error) {
		return h.applications.UpdateFields(ctx, id, wallet, patch)
	})
}

// NextStep advances the draft
// POST /api/applications/:id/next
func (h *ApplicationHandler) NextStep(c *gin.Context) {
	h.withDraft(c, http.StatusOK, func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error) {
		return h.applications.Next(ctx, id, wallet)
	})
}

// PreviousStep moves the draft back
// POST /api/applications/:id/back
func (h *ApplicationHandler) PreviousStep(c *gin.Context) {
	h.withDraft(c, http.StatusOK, func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error) {
		return h.applications.Back(ctx, id, wallet)
	})
}

// SubmitApplication finalizes the draft and returns the metadata document to pin
// POST /api/applications/:id/submit
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	h.withDraft(c, http.StatusOK, func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error) {
		state, app, err := h.applications.Submit(ctx, id, wallet)
		if err != nil {
			return nil, err
		}
		return gin.H{"state": state, "application": app}, nil
	})
}

func (h *ApplicationHandler) withDraft(c *gin.Context, status int, fn func(ctx context.Context, id uuid.UUID, wallet string) (interface{}, error)) {
	wallet, ok := auth.GetWalletAddress(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	data, err := fn(c.Request.Context(), id, wallet)
	if err != nil {
		respondError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(status, gin.H{"success": true, "data": data})
}
