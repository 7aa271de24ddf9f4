package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/service"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	api.POST("/signup-request-otp", h.signUpRequestOTP)
	api.POST("/signup-verify-otp", h.signUpVerifyOTP)
	api.POST("/login", h.signIn)

	users := api.Group("/users", h.userIdentityMiddleware)
	users.GET("/me", h.getMe)
}

type signUpRequestOTPInput struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

type otpRequestedResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type signUpVerifyOTPInput struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Otp      string `json:"otp" binding:"required,otpcode"`
	Username string `json:"username" binding:"required,alphanum,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type signInInput struct {
	Username string `json:"username" binding:"required,max=32"`
	Password string `json:"password" binding:"required,max=128"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Message     string `json:"message,omitempty"`
}

type userProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// @Summary Request signup verification code
// @Tags Auth
// @Description Sends a one-time code to the given email to start signup
// @Accept  json
// @Produce  json
// @Param input body signUpRequestOTPInput true "email"
// @Success 200 {object} otpRequestedResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /signup-request-otp [post]
func (h *Handler) signUpRequestOTP(c *gin.Context) {
	var input signUpRequestOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.SignUpRequestOTP(c.Request.Context(), input.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			errorResponse(c, http.StatusBadRequest, EmailAlreadyRegisteredCode)
		case errors.Is(err, service.ErrDeliveryFailed):
			errorResponse(c, http.StatusInternalServerError, EmailDeliveryFailedCode)
		default:
			logger.Error("signup request otp failed", zap.Error(err))
			internalErrorResponse(c)
		}
		return
	}

	c.JSON(http.StatusOK, otpRequestedResponse{
		Message: "verification code sent",
		Email:   input.Email,
	})
}

// @Summary Verify signup code and create account
// @Tags Auth
// @Description Exchanges a pending verification code for a new account and access token
// @Accept  json
// @Produce  json
// @Param input body signUpVerifyOTPInput true "email, otp, username, password"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /signup-verify-otp [post]
func (h *Handler) signUpVerifyOTP(c *gin.Context) {
	var input signUpVerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.SignUpVerifyOTP(c.Request.Context(), service.SignUpVerifyInput{
		Email:    input.Email,
		Code:     input.Otp,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			errorResponse(c, http.StatusBadRequest, InvalidVerificationCodeCode)
		case errors.Is(err, service.ErrCodeExpired):
			errorResponse(c, http.StatusBadRequest, VerificationCodeExpiredCode)
		case errors.Is(err, service.ErrUsernameTaken):
			errorResponse(c, http.StatusBadRequest, UsernameTakenCode)
		case errors.Is(err, service.ErrAlreadyRegistered):
			errorResponse(c, http.StatusBadRequest, EmailAlreadyRegisteredCode)
		default:
			logger.Error("signup verify otp failed", zap.Error(err))
			internalErrorResponse(c)
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   "bearer",
		Message:     "account created",
	})
}

// @Summary Log in
// @Tags Auth
// @Description Exchanges username and password for an access token
// @Accept  json
// @Produce  json
// @Param input body signInInput true "credentials"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /login [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorResponse(c, http.StatusBadRequest, InvalidCredentialsCode)
			return
		}
		logger.Error("sign in failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   "bearer",
	})
}

// @Summary Current user profile
// @Tags Users
// @Produce  json
// @Success 200 {object} userProfileResponse
// @Failure 401
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) getMe(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("get current user failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, userProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
