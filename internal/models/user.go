package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UsersColName = "users"

const (
	DefaultPageSize = 12
	MinPageSize     = 1
	MaxPageSize     = 100
)

func init() {
	// Report violations under the json field names clients actually send.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type Preferences struct {
	PageSize int `bson:"page_size" json:"page_size"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID      int64              `bson:"user_id" json:"user_id"`
	UserName    string             `bson:"user_name" json:"user_name"`
	FirstName   string             `bson:"first_name" json:"first_name"`
	LastName    string             `bson:"last_name" json:"last_name"`
	Email       string             `bson:"email" json:"email"`
	BirthDate   time.Time          `bson:"birth_date" json:"birth_date"`
	Password    string             `bson:"password" json:"-"`
	Status      bool               `bson:"status" json:"status"`
	IsAdmin     bool               `bson:"isAdmin" json:"isAdmin"`
	Preferences Preferences        `bson:"preferences" json:"preferences"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// RegisteredView is the sanitized shape returned right after registration.
type RegisteredView struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (u *User) RegisteredView() RegisteredView {
	return RegisteredView{
		UserID:   u.UserID,
		UserName: u.UserName,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// LoginView is the sanitized shape returned on login.
type LoginView struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (u *User) LoginView() LoginView {
	return LoginView{
		UserID:    u.UserID,
		UserName:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
	}
}

type RegisterInput struct {
	UserName  string `json:"user_name" validate:"required,min=3,max=30"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	BirthDate string `json:"birth_date" validate:"required"`
	Password  string `json:"password" validate:"required,min=6,max=30"`
}

type LoginInput struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PreferencesUpdate distinguishes "page_size not sent" from an explicit value.
type PreferencesUpdate struct {
	PageSize *int `json:"page_size"`
}

// ProfileUpdate is the allow-list for self-service profile edits. Binding into
// this struct silently drops any other submitted field; user_name, status and
// isAdmin can never arrive through here.
type ProfileUpdate struct {
	FirstName   *string            `json:"first_name"`
	LastName    *string            `json:"last_name"`
	Email       *string            `json:"email"`
	BirthDate   *string            `json:"birth_date"`
	Preferences *PreferencesUpdate `json:"preferences"`
}

// AdminUserUpdate is the allow-list for the admin user-update operation. It is
// the only path that can flip isAdmin.
type AdminUserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
	IsAdmin   *bool   `json:"isAdmin"`
}

type StatusUpdate struct {
	Status *bool `json:"status"`
}

// Violations flattens a validator error into one message per failed field so
// the client sees every problem at once.
func Violations(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, violationMessage(fe))
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ParseBirthDate accepts the date-only form the frontend sends as well as full
// RFC 3339 timestamps, and enforces birth dates in the past.
func ParseBirthDate(raw string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		t, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("birth_date must be a valid date")
	}
	if t.After(time.Now()) {
		return time.Time{}, fmt.Errorf("birth_date cannot be in the future")
	}
	return t, nil
}

// ClampPageSize pulls an out-of-range page size back into [1,100].
func ClampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
