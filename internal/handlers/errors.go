package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grants-governance/internal/auth"
	"grants-governance/internal/blockchain"
	"grants-governance/internal/services"
	"grants-governance/internal/wizard"
)

var errorStatuses = []struct {
	target error
	status int
}{
	{blockchain.ErrInvalidAddress, http.StatusBadRequest},
	{services.ErrProposalNotFound, http.StatusNotFound},
	{services.ErrBeneficiaryNotFound, http.StatusNotFound},
	{services.ErrDraftNotFound, http.StatusNotFound},
	{services.ErrDraftSubmitted, http.StatusConflict},
	{auth.ErrNonceNotFound, http.StatusUnauthorized},
	{services.ErrSignatureMismatch, http.StatusUnauthorized},
	{blockchain.ErrInvalidSignature, http.StatusUnauthorized},
	{wizard.ErrUnknownField, http.StatusUnprocessableEntity},
	{wizard.ErrInvalidValue, http.StatusUnprocessableEntity},
	{wizard.ErrStepIncomplete, http.StatusUnprocessableEntity},
	{wizard.ErrNoNextStep, http.StatusUnprocessableEntity},
	{wizard.ErrNoPreviousStep, http.StatusUnprocessableEntity},
	{wizard.ErrUnknownStep, http.StatusUnprocessableEntity},
}

// respondError writes err as a JSON error. Errors the API does not classify get
// fallback, which is 502 for handlers whose failures come from the chain or IPFS.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback int) {
	status := fallback
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			status = e.status
			break
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
