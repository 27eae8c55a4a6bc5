package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internforge/backend/internal/submissions"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type submitRequest struct {
	InternshipID    string `json:"internshipId" binding:"required,objectid"`
	TaskID          string `json:"taskId" binding:"required,objectid"`
	TaskDescription string `json:"taskDescription" binding:"required"`
	SubmittedData   string `json:"submittedData" binding:"required"`
}

type evaluateRequest struct {
	TaskDescription string `json:"taskDescription"`
}

type SubmissionHandler struct {
	svc *submissions.Service
}

func NewSubmissionHandler(s *submissions.Service) *SubmissionHandler {
	return &SubmissionHandler{svc: s}
}

// Register routes under /submissions on an authenticated group.
func (h *SubmissionHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/submissions")
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.GET("/:id/feedback", h.Feedback)
	g.POST("/:id/evaluate", h.Evaluate)
	g.GET("/tasks/:taskId/submissions", h.ListForTask)
}

// Create stores the submission and evaluates it in the same request.
func (h *SubmissionHandler) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req submitRequest
	if !bindJSON(c, &req) {
		return
	}
	iid, _ := primitive.ObjectIDFromHex(req.InternshipID)
	tid, _ := primitive.ObjectIDFromHex(req.TaskID)
	res, err := h.svc.Submit(c.Request.Context(), uid, submissions.SubmitRequest{
		InternshipID:    iid,
		TaskID:          tid,
		TaskDescription: req.TaskDescription,
		SubmittedData:   req.SubmittedData,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"submissionId": res.Submission.ID.Hex(),
		"status":       res.Submission.Status,
		"feedback":     res.Feedback,
	})
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid submission id")
	if !ok {
		return
	}
	sub, err := h.svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) Feedback(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid submission id")
	if !ok {
		return
	}
	fb, err := h.svc.Feedback(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

// Evaluate retries feedback generation. The body is optional.
func (h *SubmissionHandler) Evaluate(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid submission id")
	if !ok {
		return
	}
	var req evaluateRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
			return
		}
	}
	fb, err := h.svc.Evaluate(c.Request.Context(), uid, id, req.TaskDescription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *SubmissionHandler) ListForTask(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	tid, ok := objectIDParam(c, "taskId", "Invalid task id")
	if !ok {
		return
	}
	list, err := h.svc.ListForTask(c.Request.Context(), uid, tid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
