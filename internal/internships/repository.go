package internships

import (
	"context"
	"errors"

	"github.com/internforge/backend/internal/database"
	"github.com/internforge/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InternshipRepository interface {
	Create(ctx context.Context, in *models.Internship) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Internship, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Internship, error)
}

type WeekRepository interface {
	Create(ctx context.Context, w *models.WeeklyPlan) error
	DeleteByInternship(ctx context.Context, internshipID primitive.ObjectID) error
	ListByInternship(ctx context.Context, internshipID primitive.ObjectID) ([]models.WeeklyPlan, error)
	GetByNumber(ctx context.Context, internshipID primitive.ObjectID, week int) (*models.WeeklyPlan, error)
}

// TaskRepository has no update: tasks are written once by plan generation.
type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	DeleteByInternship(ctx context.Context, internshipID primitive.ObjectID) error
	List(ctx context.Context, internshipID primitive.ObjectID, weekID *primitive.ObjectID) ([]models.Task, error)
	Get(ctx context.Context, internshipID, taskID primitive.ObjectID) (*models.Task, error)
}

func insertedID(res *mongo.InsertOneResult, into *primitive.ObjectID) {
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		*into = id
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return database.ErrNotFound
	}
	return err
}

type MongoInternshipRepository struct{ col *mongo.Collection }

func NewMongoInternshipRepository(col *mongo.Collection) *MongoInternshipRepository {
	return &MongoInternshipRepository{col: col}
}

func (r *MongoInternshipRepository) Create(ctx context.Context, in *models.Internship) error {
	res, err := r.col.InsertOne(ctx, in)
	if err != nil {
		return err
	}
	insertedID(res, &in.ID)
	return nil
}

func (r *MongoInternshipRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoInternshipRepository) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Internship, error) {
	var in models.Internship
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&in); err != nil {
		return nil, notFound(err)
	}
	return &in, nil
}

func (r *MongoInternshipRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Internship, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Internship{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type MongoWeekRepository struct{ col *mongo.Collection }

func NewMongoWeekRepository(col *mongo.Collection) *MongoWeekRepository {
	return &MongoWeekRepository{col: col}
}

func (r *MongoWeekRepository) Create(ctx context.Context, w *models.WeeklyPlan) error {
	res, err := r.col.InsertOne(ctx, w)
	if err != nil {
		return err
	}
	insertedID(res, &w.ID)
	return nil
}

func (r *MongoWeekRepository) DeleteByInternship(ctx context.Context, internshipID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"internshipId": internshipID})
	return err
}

func (r *MongoWeekRepository) ListByInternship(ctx context.Context, internshipID primitive.ObjectID) ([]models.WeeklyPlan, error) {
	cur, err := r.col.Find(ctx, bson.M{"internshipId": internshipID}, options.Find().SetSort(bson.D{{Key: "weekNumber", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.WeeklyPlan{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoWeekRepository) GetByNumber(ctx context.Context, internshipID primitive.ObjectID, week int) (*models.WeeklyPlan, error) {
	var w models.WeeklyPlan
	if err := r.col.FindOne(ctx, bson.M{"internshipId": internshipID, "weekNumber": week}).Decode(&w); err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

type MongoTaskRepository struct{ col *mongo.Collection }

func NewMongoTaskRepository(col *mongo.Collection) *MongoTaskRepository {
	return &MongoTaskRepository{col: col}
}

func (r *MongoTaskRepository) Create(ctx context.Context, t *models.Task) error {
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	insertedID(res, &t.ID)
	return nil
}

func (r *MongoTaskRepository) DeleteByInternship(ctx context.Context, internshipID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"internshipId": internshipID})
	return err
}

func (r *MongoTaskRepository) List(ctx context.Context, internshipID primitive.ObjectID, weekID *primitive.ObjectID) ([]models.Task, error) {
	filter := bson.M{"internshipId": internshipID}
	if weekID != nil {
		filter["weekId"] = *weekID
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoTaskRepository) Get(ctx context.Context, internshipID, taskID primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := r.col.FindOne(ctx, bson.M{"_id": taskID, "internshipId": internshipID}).Decode(&t); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}
