package internships

import (
	"context"
	"errors"

	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service answers read queries. Every lookup is scoped to the owning user.
type Service struct {
	internships InternshipRepository
	weeks       WeekRepository
	tasks       TaskRepository
}

func NewService(in InternshipRepository, w WeekRepository, t TaskRepository) *Service {
	return &Service{internships: in, weeks: w, tasks: t}
}

func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Internship, error) {
	return s.internships.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Internship, error) {
	in, err := s.internships.GetForUser(ctx, id, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Internship not found")
	}
	return in, err
}

// Weeks returns the weekly plans ordered by week number.
func (s *Service) Weeks(ctx context.Context, userID, id primitive.ObjectID) ([]models.WeeklyPlan, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.weeks.ListByInternship(ctx, id)
}

// Tasks lists the internship's tasks, optionally only those of one week.
// An unknown week yields an empty list.
func (s *Service) Tasks(ctx context.Context, userID, id primitive.ObjectID, week *int) ([]models.Task, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if week == nil {
		return s.tasks.List(ctx, id, nil)
	}
	w, err := s.weeks.GetByNumber(ctx, id, *week)
	if errors.Is(err, database.ErrNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, id, &w.ID)
}

func (s *Service) Task(ctx context.Context, userID, id, taskID primitive.ObjectID) (*models.Task, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	t, err := s.tasks.Get(ctx, id, taskID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Task not found")
	}
	return t, err
}
