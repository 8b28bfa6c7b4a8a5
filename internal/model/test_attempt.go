package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Test attempt lifecycle states.
const (
	AttemptStatusInProgress = "in-progress"
	AttemptStatusCompleted  = "completed"
	AttemptStatusAbandoned  = "abandoned"
)

// Kinds of suspicious activity that can be flagged against an attempt.
const (
	ActivityTabSwitch     = "tab-switch"
	ActivityMultipleLogin = "multiple-login"
	ActivityCopyPaste     = "copy-paste"
	ActivityOther         = "other"
)

// TestAttempt records a single run of a user through a test, including the
// per-question answers and any flagged suspicious activity.
type TestAttempt struct {
	ID                   bson.ObjectID        `bson:"_id,omitempty"`
	TestID               bson.ObjectID        `bson:"test_id"`
	UserID               bson.ObjectID        `bson:"user_id"`
	StartTime            time.Time            `bson:"start_time"`
	EndTime              time.Time            `bson:"end_time,omitempty"`
	Score                int                  `bson:"score"`
	TotalQuestions       int                  `bson:"total_questions"`
	CorrectAnswers       int                  `bson:"correct_answers"`
	Answers              []AttemptAnswer      `bson:"answers"`
	Status               string               `bson:"status"`
	IPAddress            string               `bson:"ip_address,omitempty"`
	Device               string               `bson:"device,omitempty"`
	Browser              string               `bson:"browser,omitempty"`
	SuspiciousActivities []SuspiciousActivity `bson:"suspicious_activities"`
	CreatedAt            time.Time            `bson:"created_at"`
	UpdatedAt            time.Time            `bson:"updated_at"`
}

// AttemptAnswer is a single answered question within an attempt.
type AttemptAnswer struct {
	QuestionID     bson.ObjectID `bson:"question_id"`
	SelectedOption int           `bson:"selected_option"`
	IsCorrect      bool          `bson:"is_correct"`
	AnsweredAt     time.Time     `bson:"answered_at"`
}

// SuspiciousActivity is a flagged in-browser event reported during an attempt.
type SuspiciousActivity struct {
	ID        string    `bson:"id"`
	Type      string    `bson:"type"`
	Timestamp time.Time `bson:"timestamp"`
	Details   string    `bson:"details,omitempty"`
}

// ValidActivityType reports whether t is one of the enumerated
// suspicious-activity kinds.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityTabSwitch, ActivityMultipleLogin, ActivityCopyPaste, ActivityOther:
		return true
	}
	return false
}
