package v1

import (
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/service"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal expense tracking with OTP-verified signup

// @BasePath /

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	h.initUsersRoutes(api)

	protected := api.Group("/", h.userIdentityMiddleware)
	h.initExpensesRoutes(protected)
	h.initAnalyticsRoutes(protected)
}
