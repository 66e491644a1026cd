package services

import (
	"context"
	"time"

	"catalog-api/internal/helpers"
	"catalog-api/internal/models"
)

type AuthService struct {
	userRepo  models.UserRepo
	jwtSecret string
}

func NewAuthService(userRepo models.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register validates the input, enforces user_name/email uniqueness, hashes
// the password and persists the new account. Admin status can never be
// self-granted here. Returns the sanitized view plus a fresh session token.
func (as *AuthService) Register(ctx context.Context, input models.RegisterInput) (models.RegisteredView, string, error) {
	var violations []string
	if err := models.Validate.Struct(input); err != nil {
		violations = append(violations, models.Violations(err)...)
	}

	var birthDate time.Time
	if input.BirthDate != "" {
		parsed, err := models.ParseBirthDate(input.BirthDate)
		if err != nil {
			violations = append(violations, err.Error())
		}
		birthDate = parsed
	}

	if len(violations) > 0 {
		return models.RegisteredView{}, "", models.NewValidationError(violations...)
	}

	existing, err := as.userRepo.FindUserByNameOrEmail(ctx, input.UserName, input.Email)
	if err != nil {
		return models.RegisteredView{}, "", err
	}
	if existing != nil {
		return models.RegisteredView{}, "", &models.ConflictError{Message: "user with this email or username already exists"}
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return models.RegisteredView{}, "", err
	}

	now := time.Now()
	user := &models.User{
		UserID:      now.UnixMilli(),
		UserName:    input.UserName,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		BirthDate:   birthDate,
		Password:    hash,
		Status:      true,
		IsAdmin:     false,
		Preferences: models.Preferences{PageSize: models.DefaultPageSize},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The unique indexes catch the narrow race where two registrations pass
	// the pre-check together; the loser gets the same ConflictError.
	if err := as.userRepo.InsertUser(ctx, user); err != nil {
		return models.RegisteredView{}, "", err
	}

	token, err := helpers.IssueToken(as.jwtSecret, user.UserID)
	if err != nil {
		return models.RegisteredView{}, "", err
	}

	return user.RegisteredView(), token, nil
}

// Login verifies credentials and issues a session token. Unknown user and
// wrong password produce the identical error so callers cannot probe which
// field was wrong.
func (as *AuthService) Login(ctx context.Context, input models.LoginInput) (models.LoginView, string, error) {
	if err := models.Validate.Struct(input); err != nil {
		return models.LoginView{}, "", models.NewValidationError(models.Violations(err)...)
	}

	user, err := as.userRepo.FindUserByName(ctx, input.UserName)
	if err != nil {
		return models.LoginView{}, "", err
	}
	if user == nil || !helpers.VerifyPassword(user.Password, input.Password) {
		return models.LoginView{}, "", &models.AuthenticationError{Message: "invalid credentials"}
	}

	token, err := helpers.IssueToken(as.jwtSecret, user.UserID)
	if err != nil {
		return models.LoginView{}, "", err
	}

	return user.LoginView(), token, nil
}
