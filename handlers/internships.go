package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/internforge/backend/internal/internships"
)

type generateRequest struct {
	Domain        string     `json:"domain" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	DurationWeeks int        `json:"durationWeeks" binding:"required,min=1,max=52"`
	DaysPerWeek   int        `json:"daysPerWeek" binding:"required,min=1,max=7"`
	Skills        [][]string `json:"skills" binding:"required,dive,skillpair"`
}

type InternshipHandler struct {
	planner *internships.Planner
	svc     *internships.Service
}

func NewInternshipHandler(p *internships.Planner, s *internships.Service) *InternshipHandler {
	return &InternshipHandler{planner: p, svc: s}
}

// Register routes under /internships on an authenticated group.
func (h *InternshipHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/internships")
	g.POST("/generate", h.Generate)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/weeks", h.Weeks)
	g.GET("/:id/tasks", h.Tasks)
	g.GET("/:id/tasks/:taskId", h.Task)
}

func (h *InternshipHandler) Generate(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req generateRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.planner.Generate(c.Request.Context(), uid, internships.GenerateRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"internshipId": res.InternshipID.Hex(),
		"internship":   res.Internship,
		"weeklyPlans":  res.WeeklyPlans,
		"tasks":        res.Tasks,
	})
}

func (h *InternshipHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InternshipHandler) Get(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid internship id")
	if !ok {
		return
	}
	in, err := h.svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *InternshipHandler) Weeks(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid internship id")
	if !ok {
		return
	}
	weeks, err := h.svc.Weeks(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// Tasks lists tasks, filtered by ?week=N when given.
func (h *InternshipHandler) Tasks(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid internship id")
	if !ok {
		return
	}
	var week *int
	if w := c.Query("week"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
			return
		}
		week = &n
	}
	tasks, err := h.svc.Tasks(c.Request.Context(), uid, id, week)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *InternshipHandler) Task(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid internshipId or taskId")
	if !ok {
		return
	}
	tid, ok := objectIDParam(c, "taskId", "Invalid internshipId or taskId")
	if !ok {
		return
	}
	t, err := h.svc.Task(c.Request.Context(), uid, id, tid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
