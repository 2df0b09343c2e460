package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"grants-governance/internal/auth"
	"grants-governance/internal/metrics"
)

// Router wires the API handlers to their routes
type Router struct {
	FrontendURL   string
	Proposals     *ProposalHandler
	Beneficiaries *BeneficiaryHandler
	Applications  *ApplicationHandler
	Auth          *AuthHandler
	Chain         *ChainHandler
	Logger        *zap.Logger
}

// Engine builds the gin engine with middleware and all routes registered
func (r *Router) Engine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(r.Logger))

	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if r.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, r.FrontendURL)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/nonce", r.Auth.RequestNonce)
		authRoutes.POST("/wallet", r.Auth.WalletLogin)
		authRoutes.POST("/logout", r.Auth.Logout)
		authRoutes.GET("/me", auth.AuthMiddleware(), r.Auth.GetMe)
	}

	api := router.Group("/api")
	{
		// Governance reads (public)
		api.GET("/proposals", r.Proposals.GetProposals)
		api.GET("/proposals/:address", r.Proposals.GetProposal)
		api.GET("/beneficiaries", r.Beneficiaries.GetBeneficiaries)
		api.GET("/beneficiaries/:address", r.Beneficiaries.GetBeneficiary)
		api.GET("/chain/diagnostics", r.Chain.GetDiagnostics)

		// Application wizard (protected)
		apps := api.Group("/applications")
		apps.Use(auth.AuthMiddleware())
		{
			apps.GET("/steps", r.Applications.GetSteps)
			apps.POST("", r.Applications.CreateApplication)
			apps.GET("", r.Applications.GetApplications)
			apps.GET("/:id", r.Applications.GetApplication)
			apps.PATCH("/:id", r.Applications.UpdateApplication)
			apps.POST("/:id/next", r.Applications.NextStep)
			apps.POST("/:id/back", r.Applications.PreviousStep)
			apps.POST("/:id/submit", r.Applications.SubmitApplication)
		}
	}

	return router
}

// requestLogger logs every request and records its HTTP metrics under the route template
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(elapsed.Seconds())

		log.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed))
	}
}
