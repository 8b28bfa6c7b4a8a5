package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Test represents a timed multiple-choice test for a subject.
type Test struct {
	ID              bson.ObjectID   `bson:"_id,omitempty"`
	Title           string          `bson:"title"`
	Subject         string          `bson:"subject"`
	Description     string          `bson:"description,omitempty"`
	DurationMinutes int             `bson:"duration_minutes"`
	QuestionIDs     []bson.ObjectID `bson:"question_ids"`
	CreatedBy       bson.ObjectID   `bson:"created_by"`
	CreatedAt       time.Time       `bson:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at"`
}
