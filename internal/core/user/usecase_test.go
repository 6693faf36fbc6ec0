package user

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	mockPorts "weathertracker.app/internal/mocks"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

const testSecret = "test-secret-0123456789"

func newTestUseCase(t *testing.T) (*UseCase, *mockPorts.UserRepository, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	tokens, err := NewTokenIssuer(testSecret, time.Hour, "weathertracker", clock)
	require.NoError(t, err)

	repo := mockPorts.NewUserRepository(t)
	uc, err := NewUseCase(UseCaseDependencies{
		UserRepo: repo,
		Tokens:   tokens,
		Logger:   mockPorts.NewNopLogger(),
		HashCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return uc, repo, clock
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestUseCase_Register(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, errors.NewNotFoundError("user not found")).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *ports.UserData) bool {
		return u.Email == "new@example.com" &&
			u.Name == "New User" &&
			u.PreferredUnit == "celsius" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*ports.UserData).ID = 5
	}).Return(nil).Once()

	result, err := uc.Register(context.Background(), RegisterParams{
		Email: " New@Example.com ", Password: "password123", Name: " New User ",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(5), result.User.ID)

	id, err := uc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), id)
}

func TestUseCase_Register_Validation(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	tests := []struct {
		name   string
		params RegisterParams
		errMsg string
	}{
		{"BadEmail", RegisterParams{Email: "nope", Password: "password123", Name: "A"}, "invalid email format"},
		{"ShortPassword", RegisterParams{Email: "a@example.com", Password: "short", Name: "A"}, "at least 8 characters"},
		{"EmptyName", RegisterParams{Email: "a@example.com", Password: "password123", Name: "  "}, "name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tt.params)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestUseCase_Register_DuplicateEmail(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("FindByEmail", mock.Anything, "a@example.com").Return(&ports.UserData{ID: 1}, nil)

	_, err := uc.Register(context.Background(), RegisterParams{Email: "a@example.com", Password: "password123", Name: "A"})

	assert.True(t, errors.IsAlreadyExistsError(err))
}

func TestUseCase_Login(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&ports.UserData{ID: 1, Email: "a@example.com", PasswordHash: hashed(t, "password123")}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, errors.NewNotFoundError("user not found"))

	result, err := uc.Login(context.Background(), LoginParams{Email: "A@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.User.ID)

	_, err = uc.Login(context.Background(), LoginParams{Email: "a@example.com", Password: "wrong-password"})
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = uc.Login(context.Background(), LoginParams{Email: "ghost@example.com", Password: "password123"})
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestUseCase_Authenticate_ExpiredToken(t *testing.T) {
	uc, repo, clock := newTestUseCase(t)
	repo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&ports.UserData{ID: 1, Email: "a@example.com", PasswordHash: hashed(t, "password123")}, nil)

	result, err := uc.Login(context.Background(), LoginParams{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = uc.Authenticate(context.Background(), result.Token)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestUseCase_Authenticate_ForeignSecret(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	other, err := NewTokenIssuer("another-secret-abcdefgh", time.Hour, "weathertracker", nil)
	require.NoError(t, err)
	token, _, err := other.Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), token)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestUseCase_UpdateProfile(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&ports.UserData{ID: 1, Name: "Old", PreferredUnit: "celsius"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *ports.UserData) bool {
		return u.Name == "New" && u.PreferredUnit == "fahrenheit"
	})).Return(nil).Once()

	name, unit := "New", "fahrenheit"
	updated, err := uc.UpdateProfile(context.Background(), 1, UpdateProfileParams{Name: &name, PreferredUnit: &unit})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	bad := "kelvin"
	_, err = uc.UpdateProfile(context.Background(), 1, UpdateProfileParams{PreferredUnit: &bad})
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_ChangePassword(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&ports.UserData{ID: 1, PasswordHash: hashed(t, "password123")}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *ports.UserData) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
	})).Return(nil).Once()

	err := uc.ChangePassword(context.Background(), 1, ChangePasswordParams{CurrentPassword: "wrong-one", NewPassword: "new-password"})
	assert.True(t, errors.IsUnauthorizedError(err))

	err = uc.ChangePassword(context.Background(), 1, ChangePasswordParams{CurrentPassword: "password123", NewPassword: "new-password"})
	require.NoError(t, err)
}

func TestUseCase_Delete(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	repo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()

	require.NoError(t, uc.Delete(context.Background(), 1))
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour, "x", nil)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewTokenIssuer("secret", 0, "x", nil)
	assert.True(t, errors.IsConfigurationError(err))
}
