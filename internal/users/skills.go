package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SkillRepository stores self-declared skills. Delete is scoped to the owner.
type SkillRepository interface {
	Create(ctx context.Context, s *models.Skill) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error)
	Delete(ctx context.Context, userID, skillID primitive.ObjectID) error
}

type MongoSkillRepository struct {
	col *mongo.Collection
}

func NewMongoSkillRepository(col *mongo.Collection) *MongoSkillRepository {
	return &MongoSkillRepository{col: col}
}

func (r *MongoSkillRepository) Create(ctx context.Context, s *models.Skill) error {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *MongoSkillRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Skill{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoSkillRepository) Delete(ctx context.Context, userID, skillID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": skillID, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

type MemorySkillRepository struct {
	mu     sync.RWMutex
	skills []models.Skill
}

func NewMemorySkillRepository() *MemorySkillRepository {
	return &MemorySkillRepository{}
}

func (m *MemorySkillRepository) Create(_ context.Context, s *models.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	m.skills = append(m.skills, *s)
	return nil
}

func (m *MemorySkillRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Skill{}
	for _, s := range m.skills {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemorySkillRepository) Delete(_ context.Context, userID, skillID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.skills {
		if s.ID == skillID && s.UserID == userID {
			m.skills = append(m.skills[:i], m.skills[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

type SkillService struct {
	repo SkillRepository
}

func NewSkillService(r SkillRepository) *SkillService {
	return &SkillService{repo: r}
}

// Add records a skill; new skills are never verified.
func (s *SkillService) Add(ctx context.Context, userID primitive.ObjectID, skill, level string) (*models.Skill, error) {
	skill, level = strings.TrimSpace(skill), strings.TrimSpace(level)
	if skill == "" || level == "" {
		return nil, apperr.Validation("skill and level required")
	}
	sk := &models.Skill{
		UserID:    userID,
		Skill:     skill,
		Level:     level,
		Verified:  false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func (s *SkillService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *SkillService) Remove(ctx context.Context, userID, skillID primitive.ObjectID) error {
	err := s.repo.Delete(ctx, userID, skillID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("Skill not found")
	}
	return err
}
