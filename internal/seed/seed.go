// Package seed populates the database with demo accounts and questions for
// local development.
package seed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
	"github.com/AmCoder2104/exam-portal-api/shared/security"
)

// Seeder inserts demo data through the repositories.
type Seeder struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	testRepo     repository.TestRepository
}

// New creates a Seeder.
func New(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	testRepo repository.TestRepository,
) *Seeder {
	return &Seeder{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		testRepo:     testRepo,
	}
}

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{name: "Portal Admin", email: "admin@example.com", password: "admin12345", role: model.RoleAdmin},
	{name: "Lead Examiner", email: "examiner@example.com", password: "examiner12345", role: model.RoleExaminer},
	{name: "Demo Candidate", email: "candidate@example.com", password: "candidate12345", role: model.RoleCandidate},
}

var seedQuestions = map[string][]model.Question{
	"web-development": {
		{Text: "Which HTML element holds page metadata?", Options: []string{"<body>", "<head>", "<footer>", "<main>"}, CorrectAnswer: 1},
		{Text: "Which CSS property controls the text size?", Options: []string{"font-weight", "text-style", "font-size", "text-size"}, CorrectAnswer: 2},
		{Text: "Which HTTP status code means Not Found?", Options: []string{"400", "401", "404", "500"}, CorrectAnswer: 2},
	},
	"javascript": {
		{Text: "Which keyword declares a block-scoped variable?", Options: []string{"var", "let", "def", "dim"}, CorrectAnswer: 1},
		{Text: "What does JSON.parse return for '[1,2]'?", Options: []string{"a string", "an object", "an array", "undefined"}, CorrectAnswer: 2},
		{Text: "Which method adds an element to the end of an array?", Options: []string{"shift", "unshift", "pop", "push"}, CorrectAnswer: 3},
	},
}

// Run seeds users, questions, and one test per subject. Existing users are
// left untouched; duplicate email inserts are skipped.
func (s *Seeder) Run(ctx context.Context) error {
	for _, su := range seedUsers {
		passwordHash, err := security.HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		_, err = s.userRepo.CreateUser(ctx, &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: passwordHash,
			Role:         su.role,
			IsActive:     true,
		})
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}

	for subject, questions := range seedQuestions {
		existing, err := s.questionRepo.ListQuestionsBySubject(ctx, subject)
		if err != nil {
			return fmt.Errorf("list questions for %s: %w", subject, err)
		}
		if len(existing) > 0 {
			continue
		}

		test := &model.Test{
			Title:           subject,
			Subject:         subject,
			DurationMinutes: 15,
		}

		for _, q := range questions {
			question := q
			question.Subject = subject

			created, err := s.questionRepo.CreateQuestion(ctx, &question)
			if err != nil {
				return fmt.Errorf("seed question for %s: %w", subject, err)
			}

			test.QuestionIDs = append(test.QuestionIDs, created.ID)
		}

		if admin, err := s.userRepo.GetUserByEmail(ctx, "admin@example.com"); err == nil {
			test.CreatedBy = admin.ID
		}

		if _, err := s.testRepo.CreateTest(ctx, test); err != nil {
			return fmt.Errorf("seed test for %s: %w", subject, err)
		}
	}

	return nil
}
