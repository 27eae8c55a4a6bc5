package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internforge/backend/internal/models"
	"github.com/internforge/backend/internal/users"
)

type skillRequest struct {
	Skill string `json:"skill" binding:"required"`
	Level string `json:"level" binding:"required"`
}

type UserHandler struct {
	users  *users.Service
	skills *users.SkillService
}

func NewUserHandler(u *users.Service, s *users.SkillService) *UserHandler {
	return &UserHandler{users: u, skills: s}
}

// Register routes under /users on an authenticated group.
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	u := rg.Group("/users")
	u.GET("/me", h.Me)
	u.PUT("/me", h.UpdateMe)
	u.POST("/skills", h.AddSkill)
	u.GET("/skills", h.ListSkills)
	u.DELETE("/skills/:skillId", h.DeleteSkill)
}

func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMe applies name, college, course, semester and onboardingCompleted.
// Other keys are ignored.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	if err := h.users.UpdateProfile(c.Request.Context(), uid, upd); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *UserHandler) AddSkill(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req skillRequest
	if !bindJSON(c, &req) {
		return
	}
	sk, err := h.skills.Add(c.Request.Context(), uid, req.Skill, req.Level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sk)
}

func (h *UserHandler) ListSkills(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.skills.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) DeleteSkill(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	sid, ok := objectIDParam(c, "skillId", "Invalid skill id")
	if !ok {
		return
	}
	if err := h.skills.Remove(c.Request.Context(), uid, sid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill removed"})
}
