package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"wellbot/internal/models"
)

type memUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) CreateUser(user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memUserRepo) GetUserByUsername(username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) UsernameTaken(username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func newTestAuthService(repo *memUserRepo) AuthService {
	return NewAuthService(repo, "test-secret", zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register("sam", "sam@example.com", "Sam", "555-0100", "correct horse")
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if user.PasswordHash == "correct horse" || !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Fatalf("password must be stored as an argon2id hash, got %q", user.PasswordHash)
	}

	token, expiresAt, err := svc.Login("sam", "correct horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a JWT token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Username != "sam" || claims.Name != "Sam" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register("sam", "a@b.c", "Sam", "", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register("sam", "a@b.c", "Sam", "", "pw")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())
	_, _, err := svc.Login("nobody", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register("sam", "a@b.c", "Sam", "", "right"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := svc.Login("sam", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if verifyPassword("not-a-hash", "pw") {
		t.Fatal("malformed hash must not verify")
	}
	if verifyPassword("$argon2id$v=19$m=65536,t=1,p=4$badbase64!!$alsobad!!", "pw") {
		t.Fatal("undecodable hash must not verify")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := hashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := hashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("hashes of the same password must use distinct salts")
	}
	if !verifyPassword(a, "same password") || !verifyPassword(b, "same password") {
		t.Fatal("both hashes must verify against the original password")
	}
}
