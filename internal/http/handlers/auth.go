package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safakhan413/user-data-api/internal/http/response"
	"github.com/safakhan413/user-data-api/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /token
// form-encoded: username, password
func (ah *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	accessToken, err := ah.authService.IssueToken(c.Request.Context(), username, password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}
