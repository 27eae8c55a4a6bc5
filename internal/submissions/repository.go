package submissions

import (
	"context"
	"errors"
	"sync"

	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *models.Submission) error
	GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Submission, error)
	ListByTask(ctx context.Context, userID, taskID primitive.ObjectID) ([]models.Submission, error)
}

// FeedbackRepository allows one record per submission; a second Create
// fails with a duplicate error.
type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	GetBySubmission(ctx context.Context, submissionID primitive.ObjectID) (*models.Feedback, error)
}

type MongoSubmissionRepository struct{ col *mongo.Collection }

func NewMongoSubmissionRepository(col *mongo.Collection) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{col: col}
}

func (r *MongoSubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *MongoSubmissionRepository) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Submission, error) {
	var s models.Submission
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoSubmissionRepository) ListByTask(ctx context.Context, userID, taskID primitive.ObjectID) ([]models.Submission, error) {
	cur, err := r.col.Find(ctx, bson.M{"taskId": taskID, "userId": userID}, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Submission{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type MongoFeedbackRepository struct{ col *mongo.Collection }

func NewMongoFeedbackRepository(col *mongo.Collection) *MongoFeedbackRepository {
	return &MongoFeedbackRepository{col: col}
}

func (r *MongoFeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = id
	}
	return nil
}

func (r *MongoFeedbackRepository) GetBySubmission(ctx context.Context, submissionID primitive.ObjectID) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.col.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

type MemorySubmissionRepository struct {
	mu   sync.RWMutex
	subs []models.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{}
}

func (m *MemorySubmissionRepository) Create(_ context.Context, s *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	m.subs = append(m.subs, *s)
	return nil
}

func (m *MemorySubmissionRepository) GetForUser(_ context.Context, id, userID primitive.ObjectID) (*models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		if s.ID == id && s.UserID == userID {
			cp := s
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemorySubmissionRepository) ListByTask(_ context.Context, userID, taskID primitive.ObjectID) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Submission{}
	for _, s := range m.subs {
		if s.TaskID == taskID && s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type MemoryFeedbackRepository struct {
	mu           sync.RWMutex
	bySubmission map[primitive.ObjectID]models.Feedback
}

func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{bySubmission: make(map[primitive.ObjectID]models.Feedback)}
}

func (m *MemoryFeedbackRepository) Create(_ context.Context, f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySubmission[f.SubmissionID]; ok {
		return database.ErrDuplicate
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	m.bySubmission[f.SubmissionID] = *f
	return nil
}

func (m *MemoryFeedbackRepository) GetBySubmission(_ context.Context, submissionID primitive.ObjectID) (*models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.bySubmission[submissionID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &f, nil
}
