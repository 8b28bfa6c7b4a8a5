package usecase

import (
	"context"
	"errors"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
)

// Function-field mocks for the repository interfaces. Unset methods fail
// loudly so a test cannot silently depend on behavior it did not stub.

var errNotStubbed = errors.New("mock method not stubbed")

type mockUserRepo struct {
	createUserFn      func(ctx context.Context, user *model.User) (*model.User, error)
	getUserFn         func(ctx context.Context, id string) (*model.User, error)
	getUserByEmailFn  func(ctx context.Context, email string) (*model.User, error)
	updateUserFn      func(ctx context.Context, id string, params repository.UpdateUserParams) (*model.User, error)
	updateLastLoginFn func(ctx context.Context, id string) error
	deleteUserFn      func(ctx context.Context, id string) (*model.User, error)
	listUsersFn       func(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error)
	countUsersFn      func(ctx context.Context) (int64, error)

	lastLoginUpdates int
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if m.createUserFn == nil {
		return nil, errNotStubbed
	}
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepo) GetUser(ctx context.Context, id string) (*model.User, error) {
	if m.getUserFn == nil {
		return nil, errNotStubbed
	}
	return m.getUserFn(ctx, id)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getUserByEmailFn == nil {
		return nil, errNotStubbed
	}
	return m.getUserByEmailFn(ctx, email)
}

func (m *mockUserRepo) UpdateUser(
	ctx context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if m.updateUserFn == nil {
		return nil, errNotStubbed
	}
	return m.updateUserFn(ctx, id, params)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	m.lastLoginUpdates++
	if m.updateLastLoginFn == nil {
		return nil
	}
	return m.updateLastLoginFn(ctx, id)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	if m.deleteUserFn == nil {
		return nil, errNotStubbed
	}
	return m.deleteUserFn(ctx, id)
}

func (m *mockUserRepo) ListUsers(
	ctx context.Context,
	params repository.FilterUsersParams,
) ([]*model.User, error) {
	if m.listUsersFn == nil {
		return nil, errNotStubbed
	}
	return m.listUsersFn(ctx, params)
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int64, error) {
	if m.countUsersFn == nil {
		return 0, errNotStubbed
	}
	return m.countUsersFn(ctx)
}

type mockAttemptRepo struct {
	createAttemptFn   func(ctx context.Context, attempt *model.TestAttempt) (*model.TestAttempt, error)
	getAttemptFn      func(ctx context.Context, id string) (*model.TestAttempt, error)
	appendAnswerFn    func(ctx context.Context, id string, answer model.AttemptAnswer) (*model.TestAttempt, error)
	addSuspiciousFn   func(ctx context.Context, id string, activity model.SuspiciousActivity) error
	finalizeAttemptFn func(ctx context.Context, id string, params repository.FinalizeAttemptParams) (*model.TestAttempt, error)
	listAttemptsFn    func(ctx context.Context, params repository.FilterAttemptsParams) ([]*model.TestAttempt, error)
	countAttemptsFn   func(ctx context.Context) (int64, error)
}

func (m *mockAttemptRepo) CreateAttempt(
	ctx context.Context,
	attempt *model.TestAttempt,
) (*model.TestAttempt, error) {
	if m.createAttemptFn == nil {
		return nil, errNotStubbed
	}
	return m.createAttemptFn(ctx, attempt)
}

func (m *mockAttemptRepo) GetAttempt(ctx context.Context, id string) (*model.TestAttempt, error) {
	if m.getAttemptFn == nil {
		return nil, errNotStubbed
	}
	return m.getAttemptFn(ctx, id)
}

func (m *mockAttemptRepo) AppendAnswer(
	ctx context.Context,
	id string,
	answer model.AttemptAnswer,
) (*model.TestAttempt, error) {
	if m.appendAnswerFn == nil {
		return nil, errNotStubbed
	}
	return m.appendAnswerFn(ctx, id, answer)
}

func (m *mockAttemptRepo) AddSuspiciousActivity(
	ctx context.Context,
	id string,
	activity model.SuspiciousActivity,
) error {
	if m.addSuspiciousFn == nil {
		return errNotStubbed
	}
	return m.addSuspiciousFn(ctx, id, activity)
}

func (m *mockAttemptRepo) FinalizeAttempt(
	ctx context.Context,
	id string,
	params repository.FinalizeAttemptParams,
) (*model.TestAttempt, error) {
	if m.finalizeAttemptFn == nil {
		return nil, errNotStubbed
	}
	return m.finalizeAttemptFn(ctx, id, params)
}

func (m *mockAttemptRepo) ListAttempts(
	ctx context.Context,
	params repository.FilterAttemptsParams,
) ([]*model.TestAttempt, error) {
	if m.listAttemptsFn == nil {
		return nil, errNotStubbed
	}
	return m.listAttemptsFn(ctx, params)
}

func (m *mockAttemptRepo) CountAttempts(ctx context.Context) (int64, error) {
	if m.countAttemptsFn == nil {
		return 0, errNotStubbed
	}
	return m.countAttemptsFn(ctx)
}

type mockTestRepo struct {
	createTestFn       func(ctx context.Context, test *model.Test) (*model.Test, error)
	getTestFn          func(ctx context.Context, id string) (*model.Test, error)
	getTestBySubjectFn func(ctx context.Context, subject string) (*model.Test, error)
	listTestsFn        func(ctx context.Context, params repository.FilterTestsParams) ([]*model.Test, error)
	countTestsFn       func(ctx context.Context) (int64, error)
}

func (m *mockTestRepo) CreateTest(ctx context.Context, test *model.Test) (*model.Test, error) {
	if m.createTestFn == nil {
		return nil, errNotStubbed
	}
	return m.createTestFn(ctx, test)
}

func (m *mockTestRepo) GetTest(ctx context.Context, id string) (*model.Test, error) {
	if m.getTestFn == nil {
		return nil, errNotStubbed
	}
	return m.getTestFn(ctx, id)
}

func (m *mockTestRepo) GetTestBySubject(ctx context.Context, subject string) (*model.Test, error) {
	if m.getTestBySubjectFn == nil {
		return nil, errNotStubbed
	}
	return m.getTestBySubjectFn(ctx, subject)
}

func (m *mockTestRepo) ListTests(
	ctx context.Context,
	params repository.FilterTestsParams,
) ([]*model.Test, error) {
	if m.listTestsFn == nil {
		return nil, errNotStubbed
	}
	return m.listTestsFn(ctx, params)
}

func (m *mockTestRepo) CountTests(ctx context.Context) (int64, error) {
	if m.countTestsFn == nil {
		return 0, errNotStubbed
	}
	return m.countTestsFn(ctx)
}

type mockQuestionRepo struct {
	createQuestionFn func(ctx context.Context, question *model.Question) (*model.Question, error)
	getQuestionFn    func(ctx context.Context, id string) (*model.Question, error)
	listBySubjectFn  func(ctx context.Context, subject string) ([]*model.Question, error)
	deleteQuestionFn func(ctx context.Context, id string) (*model.Question, error)
	countQuestionsFn func(ctx context.Context) (int64, error)
}

func (m *mockQuestionRepo) CreateQuestion(
	ctx context.Context,
	question *model.Question,
) (*model.Question, error) {
	if m.createQuestionFn == nil {
		return nil, errNotStubbed
	}
	return m.createQuestionFn(ctx, question)
}

func (m *mockQuestionRepo) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	if m.getQuestionFn == nil {
		return nil, errNotStubbed
	}
	return m.getQuestionFn(ctx, id)
}

func (m *mockQuestionRepo) ListQuestionsBySubject(
	ctx context.Context,
	subject string,
) ([]*model.Question, error) {
	if m.listBySubjectFn == nil {
		return nil, errNotStubbed
	}
	return m.listBySubjectFn(ctx, subject)
}

func (m *mockQuestionRepo) DeleteQuestion(ctx context.Context, id string) (*model.Question, error) {
	if m.deleteQuestionFn == nil {
		return nil, errNotStubbed
	}
	return m.deleteQuestionFn(ctx, id)
}

func (m *mockQuestionRepo) CountQuestions(ctx context.Context) (int64, error) {
	if m.countQuestionsFn == nil {
		return 0, errNotStubbed
	}
	return m.countQuestionsFn(ctx)
}

type mockResetTokenRepo struct {
	createTokenFn          func(ctx context.Context, token *model.PasswordResetToken) (*model.PasswordResetToken, error)
	getTokenByJTIFn        func(ctx context.Context, jti string) (*model.PasswordResetToken, error)
	markTokenAsUsedFn      func(ctx context.Context, jti string) error
	invalidateUserTokensFn func(ctx context.Context, userID string) error
}

func (m *mockResetTokenRepo) CreateToken(
	ctx context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	if m.createTokenFn == nil {
		return nil, errNotStubbed
	}
	return m.createTokenFn(ctx, token)
}

func (m *mockResetTokenRepo) GetTokenByJTI(ctx context.Context, jti string) (*model.PasswordResetToken, error) {
	if m.getTokenByJTIFn == nil {
		return nil, errNotStubbed
	}
	return m.getTokenByJTIFn(ctx, jti)
}

func (m *mockResetTokenRepo) MarkTokenAsUsed(ctx context.Context, jti string) error {
	if m.markTokenAsUsedFn == nil {
		return errNotStubbed
	}
	return m.markTokenAsUsedFn(ctx, jti)
}

func (m *mockResetTokenRepo) InvalidateUserTokens(ctx context.Context, userID string) error {
	if m.invalidateUserTokensFn == nil {
		return errNotStubbed
	}
	return m.invalidateUserTokensFn(ctx, userID)
}
