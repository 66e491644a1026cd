package services

import (
	"context"
	"fmt"

	"catalog-api/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := us.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.NotFoundError{Message: "user not found"}
	}
	return user, nil
}

// UpdateProfile applies the self-service allow-list. user_name, status and
// isAdmin never pass through here; out-of-range page sizes are clamped into
// [1,100].
func (us *UserService) UpdateProfile(ctx context.Context, userID int64, patch models.ProfileUpdate) (*models.User, error) {
	fields, violations := us.commonUserFields(patch.FirstName, patch.LastName, patch.Email, patch.BirthDate)

	if patch.Preferences != nil && patch.Preferences.PageSize != nil {
		fields["preferences.page_size"] = models.ClampPageSize(*patch.Preferences.PageSize)
	}

	if len(violations) > 0 {
		return nil, models.NewValidationError(violations...)
	}

	if patch.Email != nil {
		if err := us.checkEmailFree(ctx, *patch.Email, userID); err != nil {
			return nil, err
		}
	}

	updated, err := us.userRepo.UpdateUserFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &models.NotFoundError{Message: "user not found"}
	}
	return updated, nil
}

// ListUsers returns every account, password hashes excluded by serialization,
// sorted by user_id ascending.
func (us *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return us.userRepo.ListUsers(ctx)
}

// UpdateStatus flips a target account's active flag.
func (us *UserService) UpdateStatus(ctx context.Context, userID int64, status bool) (*models.User, error) {
	updated, err := us.userRepo.UpdateUserFields(ctx, userID, map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &models.NotFoundError{Message: "user not found"}
	}
	return updated, nil
}

// UpdateUser is the admin edit path and the only way isAdmin changes.
func (us *UserService) UpdateUser(ctx context.Context, userID int64, patch models.AdminUserUpdate) (*models.User, error) {
	fields, violations := us.commonUserFields(patch.FirstName, patch.LastName, patch.Email, patch.BirthDate)

	if patch.IsAdmin != nil {
		fields["isAdmin"] = *patch.IsAdmin
	}

	if len(violations) > 0 {
		return nil, models.NewValidationError(violations...)
	}

	if patch.Email != nil {
		if err := us.checkEmailFree(ctx, *patch.Email, userID); err != nil {
			return nil, err
		}
	}

	updated, err := us.userRepo.UpdateUserFields(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &models.NotFoundError{Message: "user not found"}
	}
	return updated, nil
}

func (us *UserService) commonUserFields(firstName, lastName, email, birthDate *string) (map[string]interface{}, []string) {
	fields := map[string]interface{}{}
	var violations []string

	if firstName != nil {
		if err := models.Validate.Var(*firstName, "min=2,max=50"); err != nil {
			violations = append(violations, "first_name must be between 2 and 50 characters")
		} else {
			fields["first_name"] = *firstName
		}
	}
	if lastName != nil {
		if err := models.Validate.Var(*lastName, "min=2,max=50"); err != nil {
			violations = append(violations, "last_name must be between 2 and 50 characters")
		} else {
			fields["last_name"] = *lastName
		}
	}
	if email != nil {
		if err := models.Validate.Var(*email, "required,email"); err != nil {
			violations = append(violations, "email must be a valid email address")
		} else {
			fields["email"] = *email
		}
	}
	if birthDate != nil {
		parsed, err := models.ParseBirthDate(*birthDate)
		if err != nil {
			violations = append(violations, err.Error())
		} else {
			fields["birth_date"] = parsed
		}
	}

	return fields, violations
}

// checkEmailFree rejects an email already owned by a different user. Keeping
// your own email is always fine. The unique index remains the backstop for
// the race between this check and the write.
func (us *UserService) checkEmailFree(ctx context.Context, email string, userID int64) error {
	owner, err := us.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking email ownership: %v", err)
	}
	if owner != nil && owner.UserID != userID {
		return &models.ConflictError{Message: "email already in use"}
	}
	return nil
}
