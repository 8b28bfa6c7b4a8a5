package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Question represents a multiple-choice question. CorrectAnswer is the
// index into Options and is never exposed to candidates.
type Question struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Subject       string        `bson:"subject"`
	Text          string        `bson:"text"`
	Options       []string      `bson:"options"`
	CorrectAnswer int           `bson:"correct_answer"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}
