package services

import (
	"context"
	"testing"
	"time"

	"catalog-api/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func twoUsers() *fakeUserRepo {
	now := time.Now()
	return &fakeUserRepo{users: []*models.User{
		{
			UserID:      1001,
			UserName:    "eli",
			FirstName:   "Eli",
			LastName:    "Test",
			Email:       "eli@test.com",
			Status:      true,
			IsAdmin:     true,
			Preferences: models.Preferences{PageSize: 12},
			CreatedAt:   now,
		},
		{
			UserID:      1002,
			UserName:    "dana",
			FirstName:   "Dana",
			LastName:    "Levi",
			Email:       "dana@example.com",
			Status:      true,
			Preferences: models.Preferences{PageSize: 12},
			CreatedAt:   now,
		},
	}}
}

func TestGetProfile(t *testing.T) {
	us := NewUserService(twoUsers())

	user, err := us.GetProfile(context.Background(), 1002)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if user.UserName != "dana" {
		t.Errorf("wrong user resolved: %q", user.UserName)
	}

	if _, err := us.GetProfile(context.Background(), 9999); err == nil {
		t.Error("unknown user id resolved")
	} else if _, ok := err.(*models.NotFoundError); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	us := NewUserService(twoUsers())

	// Taking another user's email must conflict.
	_, err := us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
		Email: strPtr("eli@test.com"),
	})
	if _, ok := err.(*models.ConflictError); !ok {
		t.Errorf("expected ConflictError, got %T: %v", err, err)
	}

	// Resubmitting your own email is fine.
	updated, err := us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
		Email: strPtr("dana@example.com"),
	})
	if err != nil {
		t.Fatalf("own email rejected: %v", err)
	}
	if updated.Email != "dana@example.com" {
		t.Errorf("email = %q", updated.Email)
	}
}

func TestUpdateProfileClampsPageSize(t *testing.T) {
	us := NewUserService(twoUsers())

	cases := []struct {
		sent, want int
	}{
		{500, models.MaxPageSize},
		{0, models.MinPageSize},
		{-3, models.MinPageSize},
		{25, 25},
	}
	for _, tc := range cases {
		updated, err := us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
			Preferences: &models.PreferencesUpdate{PageSize: intPtr(tc.sent)},
		})
		if err != nil {
			t.Fatalf("UpdateProfile(%d) failed: %v", tc.sent, err)
		}
		if updated.Preferences.PageSize != tc.want {
			t.Errorf("page_size %d clamped to %d, want %d", tc.sent, updated.Preferences.PageSize, tc.want)
		}
	}
}

func TestUpdateProfileBirthDate(t *testing.T) {
	us := NewUserService(twoUsers())

	_, err := us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
		BirthDate: strPtr("2999-01-01"),
	})
	if _, ok := err.(*models.ValidationError); !ok {
		t.Errorf("future birth date accepted: %v", err)
	}

	_, err = us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
		BirthDate: strPtr("not-a-date"),
	})
	if _, ok := err.(*models.ValidationError); !ok {
		t.Errorf("unparsable birth date accepted: %v", err)
	}

	updated, err := us.UpdateProfile(context.Background(), 1002, models.ProfileUpdate{
		BirthDate: strPtr("1991-03-02"),
	})
	if err != nil {
		t.Fatalf("valid birth date rejected: %v", err)
	}
	if updated.BirthDate.Year() != 1991 {
		t.Errorf("birth date not applied: %v", updated.BirthDate)
	}
}

func TestListUsersSorted(t *testing.T) {
	us := NewUserService(twoUsers())

	users, err := us.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].UserID > users[1].UserID {
		t.Error("users not sorted by user_id ascending")
	}
}

func TestUpdateStatus(t *testing.T) {
	us := NewUserService(twoUsers())

	updated, err := us.UpdateStatus(context.Background(), 1002, false)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status {
		t.Error("status not flipped")
	}

	if _, err := us.UpdateStatus(context.Background(), 9999, false); err == nil {
		t.Error("unknown user id accepted")
	}
}

func TestAdminUpdateUserPromotes(t *testing.T) {
	us := NewUserService(twoUsers())

	updated, err := us.UpdateUser(context.Background(), 1002, models.AdminUserUpdate{
		IsAdmin:   boolPtr(true),
		FirstName: strPtr("Dana-Marie"),
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if !updated.IsAdmin {
		t.Error("isAdmin promotion not applied")
	}
	if updated.FirstName != "Dana-Marie" {
		t.Errorf("first_name = %q", updated.FirstName)
	}

	// Demotion works the same way.
	updated, err = us.UpdateUser(context.Background(), 1002, models.AdminUserUpdate{
		IsAdmin: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.IsAdmin {
		t.Error("isAdmin demotion not applied")
	}
}
