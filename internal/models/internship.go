package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const InternshipStatusPlanned = "planned"

type Internship struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Domain        string             `bson:"domain" json:"domain"`
	Title         string             `bson:"title" json:"title"`
	DurationWeeks int                `bson:"durationWeeks" json:"durationWeeks"`
	DaysPerWeek   int                `bson:"daysPerWeek" json:"daysPerWeek"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// WeeklyPlan holds the objectives of one week. LearningObjectives keeps
// whatever shape the planner produced (string, list or object).
type WeeklyPlan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InternshipID       primitive.ObjectID `bson:"internshipId" json:"internshipId"`
	WeekNumber         int                `bson:"weekNumber" json:"weekNumber"`
	LearningObjectives interface{}        `bson:"learningObjectives" json:"learningObjectives"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

type Task struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InternshipID         primitive.ObjectID `bson:"internshipId" json:"internshipId"`
	WeekID               primitive.ObjectID `bson:"weekId" json:"weekId"`
	Title                string             `bson:"title" json:"title"`
	ContentType          string             `bson:"contentType" json:"contentType"`
	Description          string             `bson:"description" json:"description"`
	ExpectedDeliverables interface{}        `bson:"expectedDeliverables" json:"expectedDeliverables"`
	EstimatedHours       float64            `bson:"estimatedHours" json:"estimatedHours"`
	Difficulty           string             `bson:"difficulty" json:"difficulty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
