package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
	"weathertracker.app/pkg/validation"
)

const defaultPreferredUnit = "celsius"

type UseCase struct {
	userRepo ports.UserRepository
	tokens   *TokenIssuer
	logger   ports.Logger
	hashCost int
}

type UseCaseDependencies struct {
	UserRepo ports.UserRepository
	Tokens   *TokenIssuer
	Logger   ports.Logger
	// HashCost overrides the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.UserRepo == nil {
		return nil, errors.NewValidationError("user repository is required")
	}
	if deps.Tokens == nil {
		return nil, errors.NewValidationError("token issuer is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	cost := deps.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &UseCase{
		userRepo: deps.UserRepo,
		tokens:   deps.Tokens,
		logger:   deps.Logger,
		hashCost: cost,
	}, nil
}

func (uc *UseCase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	params.Email = validation.NormalizeEmail(params.Email)
	params.Name = normalizeName(params.Name)
	if err := params.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid registration: " + err.Error())
	}

	if _, err := uc.userRepo.FindByEmail(ctx, params.Email); err == nil {
		return nil, errors.NewAlreadyExistsError("email already registered")
	} else if !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	data := &ports.UserData{
		Email:         params.Email,
		Name:          params.Name,
		PasswordHash:  string(hash),
		PreferredUnit: defaultPreferredUnit,
	}
	if err := uc.userRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	uc.logger.Info("User registered", ports.F("user_id", data.ID))
	return uc.authResult(data)
}

func (uc *UseCase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := validation.NormalizeEmail(params.Email)

	data, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(data.PasswordHash), []byte(params.Password)) != nil {
		uc.logger.Warn("Failed login attempt", ports.F("user_id", data.ID))
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	return uc.authResult(data)
}

// Authenticate resolves a bearer token to the user id it was issued for
func (uc *UseCase) Authenticate(ctx context.Context, token string) (uint, error) {
	claims, err := uc.tokens.Validate(token)
	if err != nil {
		return 0, err
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, errors.NewUnauthorizedError("invalid token subject")
	}
	return id, nil
}

func (uc *UseCase) GetProfile(ctx context.Context, userID uint) (*User, error) {
	data, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return fromData(data), nil
}

func (uc *UseCase) UpdateProfile(ctx context.Context, userID uint, params UpdateProfileParams) (*User, error) {
	if err := params.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid profile: " + err.Error())
	}

	data, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}

	if params.Name != nil {
		data.Name = normalizeName(*params.Name)
	}
	if params.PreferredUnit != nil {
		data.PreferredUnit = *params.PreferredUnit
	}

	if err := uc.userRepo.Update(ctx, data); err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	return fromData(data), nil
}

func (uc *UseCase) ChangePassword(ctx context.Context, userID uint, params ChangePasswordParams) error {
	if !validation.IsValidPassword(params.NewPassword) {
		return errors.NewValidationError("password must be at least 8 characters")
	}

	data, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(data.PasswordHash), []byte(params.CurrentPassword)) != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.NewPassword), uc.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	data.PasswordHash = string(hash)

	if err := uc.userRepo.Update(ctx, data); err != nil {
		return fmt.Errorf("update user %d: %w", userID, err)
	}

	uc.logger.Info("Password changed", ports.F("user_id", userID))
	return nil
}

func (uc *UseCase) Delete(ctx context.Context, userID uint) error {
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	uc.logger.Info("User deleted", ports.F("user_id", userID))
	return nil
}

func (uc *UseCase) authResult(data *ports.UserData) (*AuthResult, error) {
	token, expiresAt, err := uc.tokens.Generate(data.ID, data.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: fromData(data)}, nil
}
