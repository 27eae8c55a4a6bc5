package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AuthProviderLocal = "local"

// User is a registered learner. PasswordHash never leaves the store.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"`
	PasswordHash        string             `bson:"passwordHash" json:"-"`
	AuthProvider        string             `bson:"authProvider" json:"authProvider"`
	Name                string             `bson:"name,omitempty" json:"name,omitempty"`
	College             string             `bson:"college,omitempty" json:"college,omitempty"`
	Course              string             `bson:"course,omitempty" json:"course,omitempty"`
	Semester            string             `bson:"semester,omitempty" json:"semester,omitempty"`
	EmailVerified       bool               `bson:"emailVerified" json:"emailVerified"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate carries the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name                *string `json:"name"`
	College             *string `json:"college"`
	Course              *string `json:"course"`
	Semester            *string `json:"semester"`
	OnboardingCompleted *bool   `json:"onboardingCompleted"`
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.College == nil && p.Course == nil && p.Semester == nil && p.OnboardingCompleted == nil
}

// Skill is a self-declared skill on a user profile.
type Skill struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Skill     string             `bson:"skill" json:"skill"`
	Level     string             `bson:"level" json:"level"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
