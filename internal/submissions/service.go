package submissions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/internforge/backend/internal/agent"
	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/llmjson"
	"github.com/internforge/backend/internal/models"
	"github.com/internforge/backend/internal/storage"
	"github.com/internforge/backend/pkg/logger"
	"github.com/internforge/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Runner is the part of agent.Agent the service needs.
type Runner interface {
	Name() string
	Run(ctx context.Context, userPrompt string) (string, error)
}

// TaskLookup resolves a task the user may submit to.
type TaskLookup interface {
	Task(ctx context.Context, userID, internshipID, taskID primitive.ObjectID) (*models.Task, error)
}

type SubmitRequest struct {
	InternshipID    primitive.ObjectID
	TaskID          primitive.ObjectID
	TaskDescription string
	SubmittedData   string
}

type SubmitResult struct {
	Submission *models.Submission
	Feedback   *models.Feedback
}

// EvaluationError names the stored submission whose evaluation failed, so
// the caller can retry it.
type EvaluationError struct {
	SubmissionID primitive.ObjectID
	Err          error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate submission %s: %v", e.SubmissionID.Hex(), e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

type Service struct {
	subs     SubmissionRepository
	feedback FeedbackRepository
	tasks    TaskLookup
	agent    Runner
	archive  storage.Archiver
}

func NewService(subs SubmissionRepository, fb FeedbackRepository, tasks TaskLookup, a Runner, arc storage.Archiver) *Service {
	if arc == nil {
		arc = storage.NopArchiver{}
	}
	return &Service{subs: subs, feedback: fb, tasks: tasks, agent: a, archive: arc}
}

// Submit stores the submission and then evaluates it. The submission is kept
// when evaluation fails; the returned error then wraps an *EvaluationError.
func (s *Service) Submit(ctx context.Context, userID primitive.ObjectID, req SubmitRequest) (*SubmitResult, error) {
	if strings.TrimSpace(req.SubmittedData) == "" {
		return nil, apperr.Validation("submittedData is required")
	}
	if strings.TrimSpace(req.TaskDescription) == "" {
		return nil, apperr.Validation("taskDescription is required")
	}
	if _, err := s.tasks.Task(ctx, userID, req.InternshipID, req.TaskID); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	sub := &models.Submission{
		UserID:        userID,
		InternshipID:  req.InternshipID,
		TaskID:        req.TaskID,
		SubmittedData: req.SubmittedData,
		Status:        models.SubmissionStatusSubmitted,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	fb, err := s.evaluate(ctx, sub, req.TaskDescription)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Submission: sub, Feedback: fb}, nil
}

// Evaluate re-runs feedback for a stored submission that has none. An empty
// taskDescription falls back to the stored task's description.
func (s *Service) Evaluate(ctx context.Context, userID, submissionID primitive.ObjectID, taskDescription string) (*models.Feedback, error) {
	sub, err := s.Get(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.feedback.GetBySubmission(ctx, sub.ID); err == nil {
		return nil, apperr.Conflict("Feedback already exists")
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if strings.TrimSpace(taskDescription) == "" {
		task, err := s.tasks.Task(ctx, userID, sub.InternshipID, sub.TaskID)
		if err != nil {
			return nil, err
		}
		taskDescription = task.Description
	}
	return s.evaluate(context.WithoutCancel(ctx), sub, taskDescription)
}

func (s *Service) evaluate(ctx context.Context, sub *models.Submission, taskDescription string) (*models.Feedback, error) {
	raw, err := s.agent.Run(ctx, agent.FeedbackPrompt(taskDescription, sub.SubmittedData))
	if err != nil {
		return nil, apperr.Upstream("feedback generation failed", &EvaluationError{SubmissionID: sub.ID, Err: err})
	}
	if key, aerr := s.archive.Archive(ctx, s.agent.Name(), raw); aerr != nil {
		logger.Warnf("archive feedback output: %v", aerr)
	} else if key != "" {
		logger.Debugf("feedback output archived at %s", key)
	}

	out, err := llmjson.DecodeFeedback(raw)
	if err != nil {
		stage := llmjson.Stage(err)
		metrics.OutputRejected.WithLabelValues("feedback", stage).Inc()
		logger.Warnw("feedback output rejected", "submission", sub.ID.Hex(), "stage", stage, "err", err)
		return nil, apperr.Upstream("feedback output rejected", &EvaluationError{SubmissionID: sub.ID, Err: err})
	}

	fb := &models.Feedback{
		SubmissionID:         sub.ID,
		Strengths:            out.Strengths,
		Weaknesses:           out.Weaknesses,
		Improvements:         out.Improvements,
		RecommendedNextSteps: out.RecommendedNextSteps,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		if database.IsDuplicate(err) {
			return nil, apperr.Conflict("Feedback already exists")
		}
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	logger.Infow("submission evaluated", "submission", sub.ID.Hex(), "task", sub.TaskID.Hex())
	return fb, nil
}

func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Submission, error) {
	sub, err := s.subs.GetForUser(ctx, id, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Submission not found")
	}
	return sub, err
}

// Feedback returns the evaluation of the user's submission.
func (s *Service) Feedback(ctx context.Context, userID, submissionID primitive.ObjectID) (*models.Feedback, error) {
	if _, err := s.Get(ctx, userID, submissionID); err != nil {
		return nil, err
	}
	fb, err := s.feedback.GetBySubmission(ctx, submissionID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Feedback not ready")
	}
	return fb, err
}

func (s *Service) ListForTask(ctx context.Context, userID, taskID primitive.ObjectID) ([]models.Submission, error) {
	return s.subs.ListByTask(ctx, userID, taskID)
}
