package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SubmissionStatusSubmitted = "submitted"

type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	InternshipID  primitive.ObjectID `bson:"internshipId" json:"internshipId"`
	TaskID        primitive.ObjectID `bson:"taskId" json:"taskId"`
	SubmittedData string             `bson:"submittedData" json:"submittedData"`
	Status        string             `bson:"status" json:"status"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// Feedback is the evaluation of exactly one submission.
type Feedback struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubmissionID         primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	Strengths            []string           `bson:"strengths" json:"strengths"`
	Weaknesses           []string           `bson:"weaknesses" json:"weaknesses"`
	Improvements         []string           `bson:"improvements" json:"improvements"`
	RecommendedNextSteps []string           `bson:"recommendedNextSteps" json:"recommendedNextSteps"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
