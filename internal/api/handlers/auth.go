package handlers

import (
	"errors"
	"net/http"
	"wordvault/internal/audit"
	"wordvault/internal/auth"
	"wordvault/internal/models"
	"wordvault/internal/otp"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for the two-step authentication flow
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func requestContext(c *gin.Context) audit.RequestContext {
	return audit.RequestContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// respondAuthError maps service errors onto HTTP statuses. Throttling errors
// carry their retry hints into the payload; anything unrecognized is an
// opaque 500 so internals never leak.
func respondAuthError(c *gin.Context, err error) {
	var rateErr *otp.RateLimitError
	if errors.As(err, &rateErr) {
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:             "too many verification code requests",
			RetryAfterMinutes: &rateErr.RetryAfterMinutes,
		})
		return
	}

	var cooldownErr *otp.CooldownError
	if errors.As(err, &cooldownErr) {
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:             "please wait before requesting another code",
			RetryAfterSeconds: &cooldownErr.RetryAfterSeconds,
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidOtp):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

// Login godoc
// @Summary Start a login
// @Description Check credentials and email a one-time verification code. The session is not authenticated until the code is verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse "Verification code sent"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many code requests"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req, requestContext(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Create an account
// @Description Create an account and email a one-time verification code for it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.LoginResponse "Account created, verification code sent"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 429 {object} models.ErrorResponse "Too many code requests"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req, requestContext(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyOtp godoc
// @Summary Verify a one-time code
// @Description Complete authentication by verifying the emailed code and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOtpRequest true "Code submission"
// @Success 200 {object} models.VerifyOtpResponse "Authentication successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Invalid or expired code"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.VerifyOtp(c.Request.Context(), req, requestContext(c))
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResendOtp godoc
// @Summary Resend a verification code
// @Description Issue a fresh code for the account, invalidating any previous one
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResendOtpRequest true "Resend request"
// @Success 200 {object} models.LoginResponse "Verification code sent"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 429 {object} models.ErrorResponse "Too many code requests or cooldown active"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/resend-otp [post]
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req models.ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.authService.ResendOtp(c.Request.Context(), req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// OtpStatus godoc
// @Summary Verification code status
// @Description Report whether a valid code is outstanding and the remaining request allowance
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OtpStatusRequest true "Status request"
// @Success 200 {object} models.OtpStatus "Issuance status"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/otp-status [post]
func (h *AuthHandler) OtpStatus(c *gin.Context) {
	var req models.OtpStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	status, err := h.authService.OtpStatus(c.Request.Context(), req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Logout godoc
// @Summary Log out
// @Description Record the end of the session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SuccessResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	h.authService.Logout(c.Request.Context(), user, requestContext(c))

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Authenticated user"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user)
}
