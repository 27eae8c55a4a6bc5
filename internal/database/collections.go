package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection       = "users"
	SkillsCollection      = "user_skills"
	InternshipsCollection = "internships"
	WeeklyPlansCollection = "weekly_plans"
	TasksCollection       = "tasks"
	SubmissionsCollection = "submissions"
	FeedbackCollection    = "feedback"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// IsDuplicate reports a unique-index violation from either store backend.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate) || mongo.IsDuplicateKeyError(err)
}

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

var indexes = []indexSpec{
	{UsersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
	{FeedbackCollection, mongo.IndexModel{Keys: bson.D{{Key: "submissionId", Value: 1}}, Options: options.Index().SetUnique(true)}},
	{SkillsCollection, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
	{InternshipsCollection, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
	{WeeklyPlansCollection, mongo.IndexModel{Keys: bson.D{{Key: "internshipId", Value: 1}, {Key: "weekNumber", Value: 1}}}},
	{TasksCollection, mongo.IndexModel{Keys: bson.D{{Key: "internshipId", Value: 1}, {Key: "weekId", Value: 1}}}},
	{SubmissionsCollection, mongo.IndexModel{Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "userId", Value: 1}}}},
}

// EnsureIndexes creates the collection indexes. Existing identical indexes are
// left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var names []string
	for _, ix := range indexes {
		name, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, ix.model)
		if err != nil {
			return names, fmt.Errorf("create index on %s: %w", ix.collection, err)
		}
		names = append(names, ix.collection+"."+name)
	}
	return names, nil
}
