package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internforge/backend/internal/sessions"
	"github.com/internforge/backend/internal/tokens"
	"github.com/internforge/backend/internal/users"
	"github.com/internforge/backend/pkg/logger"
	"github.com/internforge/backend/pkg/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	College  string `json:"college"`
	Course   string `json:"course"`
	Semester string `json:"semester"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	users   *users.Service
	issuer  *tokens.Issuer
	revoker sessions.Revoker
}

func NewAuthHandler(u *users.Service, iss *tokens.Issuer, rev sessions.Revoker) *AuthHandler {
	return &AuthHandler{users: u, issuer: iss, revoker: rev}
}

// Register routes under /auth. requireAuth guards logout.
func (h *AuthHandler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/register", h.SignUp)
	a.POST("/login", h.Login)
	a.POST("/logout", requireAuth, h.Logout)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Register(c.Request.Context(), users.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		College:  req.College,
		Course:   req.Course,
		Semester: req.Semester,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Infow("user registered", "user", u.ID.Hex())
	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "id": u.ID.Hex()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	access, _, err := h.issuer.Issue(u.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(h.issuer.TTL().Seconds())})
}

// Logout revokes the presented access token for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.TokenKey)
	v, _ := c.Get(middleware.ClaimsKey)
	claims, ok := v.(*tokens.Claims)
	if raw == "" || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.revoker.Revoke(c.Request.Context(), raw, claims.Remaining(time.Now())); err != nil {
		logger.Errorf("revoke access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
