package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"catalog-api/internal/helpers"
	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

const secret = "middleware-test-secret"

// stubUserRepo serves only the lookups the middleware needs.
type stubUserRepo struct {
	users map[int64]*models.User
}

func (s *stubUserRepo) EnsureUserIndexes(ctx context.Context) error               { return nil }
func (s *stubUserRepo) InsertUser(ctx context.Context, user *models.User) error   { return nil }
func (s *stubUserRepo) CountUsers(ctx context.Context) (int64, error)             { return 0, nil }
func (s *stubUserRepo) ListUsers(ctx context.Context) ([]*models.User, error)     { return nil, nil }
func (s *stubUserRepo) FindUserByName(ctx context.Context, userName string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindUserByNameOrEmail(ctx context.Context, userName, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) UpdateUserFields(ctx context.Context, userID int64, fields map[string]interface{}) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.users[userID], nil
}

func testRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	us := services.NewUserService(repo)

	r := gin.New()
	protected := r.Group("/", Auth(secret, us, logger))
	protected.GET("/me", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "page_size": user.Preferences.PageSize})
	})
	protected.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seededRepo() *stubUserRepo {
	return &stubUserRepo{users: map[int64]*models.User{
		1001: {UserID: 1001, UserName: "eli", IsAdmin: true, Status: true, Preferences: models.Preferences{PageSize: 12}},
		1002: {UserID: 1002, UserName: "dana", Status: true, Preferences: models.Preferences{PageSize: 25}},
	}}
}

func TestAuthMissingToken(t *testing.T) {
	r := testRouter(seededRepo())

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := testRouter(seededRepo())

	if w := doGet(r, "/me", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", w.Code)
	}

	other, err := helpers.IssueToken("different-secret", 1002)
	if err != nil {
		t.Fatal(err)
	}
	if w := doGet(r, "/me", other); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign-secret token: status %d, want 401", w.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	r := testRouter(seededRepo())

	claims := helpers.SessionClaims{
		UserID: 1002,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}

	if w := doGet(r, "/me", expired); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status %d, want 401", w.Code)
	}
}

func TestAuthDeletedUser(t *testing.T) {
	r := testRouter(seededRepo())

	token, err := helpers.IssueToken(secret, 4242)
	if err != nil {
		t.Fatal(err)
	}
	if w := doGet(r, "/me", token); w.Code != http.StatusUnauthorized {
		t.Errorf("token for vanished user: status %d, want 401", w.Code)
	}
}

func TestAuthAttachesUser(t *testing.T) {
	r := testRouter(seededRepo())

	token, err := helpers.IssueToken(secret, 1002)
	if err != nil {
		t.Fatal(err)
	}
	w := doGet(r, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !containsAll(body, `"user_id":1002`, `"page_size":25`) {
		t.Errorf("resolved user (with preferences) not attached: %s", body)
	}
}

func TestAdminGate(t *testing.T) {
	r := testRouter(seededRepo())

	userToken, err := helpers.IssueToken(secret, 1002)
	if err != nil {
		t.Fatal(err)
	}
	if w := doGet(r, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Errorf("non-admin on admin route: status %d, want 403", w.Code)
	}

	adminToken, err := helpers.IssueToken(secret, 1001)
	if err != nil {
		t.Fatal(err)
	}
	if w := doGet(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status %d, want 200", w.Code)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
