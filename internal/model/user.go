package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles a user can hold. Registration always assigns RoleCandidate; the
// other two are granted by administrators out of band.
const (
	RoleAdmin     = "admin"
	RoleExaminer  = "examiner"
	RoleCandidate = "candidate"
)

// User represents a portal account.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Role         string        `bson:"role"`
	IsActive     bool          `bson:"is_active"`
	ProfileImage string        `bson:"profile_image,omitempty"`
	LastLoginAt  time.Time     `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
