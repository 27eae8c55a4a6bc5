package internships

import (
	"context"
	"sort"
	"sync"

	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore implements the three repositories in one process. Use the
// accessor methods to obtain each interface.
type MemoryStore struct {
	mu          sync.RWMutex
	internships []models.Internship
	weeks       []models.WeeklyPlan
	tasks       []models.Task
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Internships() InternshipRepository { return memInternships{m} }
func (m *MemoryStore) Weeks() WeekRepository             { return memWeeks{m} }
func (m *MemoryStore) Tasks() TaskRepository             { return memTasks{m} }

// Counts reports the stored document counts.
func (m *MemoryStore) Counts() (internships, weeks, tasks int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.internships), len(m.weeks), len(m.tasks)
}

type memInternships struct{ m *MemoryStore }

func (r memInternships) Create(_ context.Context, in *models.Internship) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if in.ID.IsZero() {
		in.ID = primitive.NewObjectID()
	}
	r.m.internships = append(r.m.internships, *in)
	return nil
}

func (r memInternships) Delete(_ context.Context, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := r.m.internships[:0]
	for _, in := range r.m.internships {
		if in.ID != id {
			out = append(out, in)
		}
	}
	r.m.internships = out
	return nil
}

func (r memInternships) GetForUser(_ context.Context, id, userID primitive.ObjectID) (*models.Internship, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, in := range r.m.internships {
		if in.ID == id && in.UserID == userID {
			cp := in
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r memInternships) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Internship, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []models.Internship{}
	for i := len(r.m.internships) - 1; i >= 0; i-- {
		if r.m.internships[i].UserID == userID {
			out = append(out, r.m.internships[i])
		}
	}
	return out, nil
}

type memWeeks struct{ m *MemoryStore }

func (r memWeeks) Create(_ context.Context, w *models.WeeklyPlan) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	r.m.weeks = append(r.m.weeks, *w)
	return nil
}

func (r memWeeks) DeleteByInternship(_ context.Context, internshipID primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := r.m.weeks[:0]
	for _, w := range r.m.weeks {
		if w.InternshipID != internshipID {
			out = append(out, w)
		}
	}
	r.m.weeks = out
	return nil
}

func (r memWeeks) ListByInternship(_ context.Context, internshipID primitive.ObjectID) ([]models.WeeklyPlan, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []models.WeeklyPlan{}
	for _, w := range r.m.weeks {
		if w.InternshipID == internshipID {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (r memWeeks) GetByNumber(_ context.Context, internshipID primitive.ObjectID, week int) (*models.WeeklyPlan, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, w := range r.m.weeks {
		if w.InternshipID == internshipID && w.WeekNumber == week {
			cp := w
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

type memTasks struct{ m *MemoryStore }

func (r memTasks) Create(_ context.Context, t *models.Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	r.m.tasks = append(r.m.tasks, *t)
	return nil
}

func (r memTasks) DeleteByInternship(_ context.Context, internshipID primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := r.m.tasks[:0]
	for _, t := range r.m.tasks {
		if t.InternshipID != internshipID {
			out = append(out, t)
		}
	}
	r.m.tasks = out
	return nil
}

func (r memTasks) List(_ context.Context, internshipID primitive.ObjectID, weekID *primitive.ObjectID) ([]models.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []models.Task{}
	for _, t := range r.m.tasks {
		if t.InternshipID != internshipID {
			continue
		}
		if weekID != nil && t.WeekID != *weekID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r memTasks) Get(_ context.Context, internshipID, taskID primitive.ObjectID) (*models.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, t := range r.m.tasks {
		if t.ID == taskID && t.InternshipID == internshipID {
			cp := t
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}
