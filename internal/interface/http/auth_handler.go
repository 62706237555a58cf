package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/internal/application"
	"github.com/oksasatya/complaint-desk/internal/interface/middleware"
	"github.com/oksasatya/complaint-desk/pkg/response"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type registerRequest struct {
	FullName string `json:"fullName" binding:"required,notblank"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Missing login fields fall through to the credential check so every failed
// login renders the same way.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, invalidPayload(err))
		return
	}
	token, err := h.Auth.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, tokenResponse{Message: "User registered successfully", Token: token})
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, invalidPayload(err))
		return
	}
	s, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, loginResponse{
		Message:  "Login successful",
		Token:    s.Token,
		Username: s.User.FullName,
		Role:     string(s.Role),
	})
}

// Logout POST /api/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Logged out")
}
