package auth

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/domain/user"
	"github.com/sebastupa/testAssist/internal/pkg/jwt"
	"github.com/sebastupa/testAssist/internal/pkg/password"
)

type mockUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User

	createErr error
	created   []user.User
	prefIDs   []uuid.UUID
	updated   map[uuid.UUID]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    map[uuid.UUID]user.User{},
		byEmail: map[string]user.User{},
		updated: map[uuid.UUID]string{},
	}
}

func (m *mockUserRepo) add(u user.User) {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
}

func (m *mockUserRepo) CreateWithEmptyPreferences(_ context.Context, u user.User, prefID uuid.UUID) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	m.created = append(m.created, u)
	m.prefIDs = append(m.prefIDs, prefID)
	m.add(u)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	m.add(u)
	m.updated[id] = hash
	return nil
}

type mockLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockLimiter) Allow(context.Context, string) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

func newTestService(repo *mockUserRepo, limiter ResetLimiter) *Service {
	tokens := jwt.NewHMACService("a-secret", "r-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, tokens, limiter)
}

func TestSignup_CreatesUserAndPreferences(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	u, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "Sebas@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if u.Email != "sebas@example.com" {
		t.Fatalf("expected normalized email, got %s", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash must not be returned")
	}
	if len(repo.created) != 1 || len(repo.prefIDs) != 1 {
		t.Fatal("expected one user and one preferences row created")
	}
	if repo.created[0].PasswordHash == "hunter22" {
		t.Fatal("stored hash must not equal plaintext")
	}
	if repo.prefIDs[0] == uuid.Nil {
		t.Fatal("expected generated preferences id")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	in := SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestSignup_InvalidInput(t *testing.T) {
	svc := newTestService(newMockUserRepo(), nil)

	for _, in := range []SignupInput{
		{Name: "", Email: "a@b.com", Password: "x"},
		{Name: "A", Email: "", Password: "x"},
		{Name: "A", Email: "a@b.com", Password: "   "},
	} {
		if _, err := svc.Signup(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestLogin_IssuesTokens(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	u, pair, err := svc.Login(context.Background(), LoginInput{Email: "sebas@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash must not be returned")
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "sebas@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefresh_RotatesPair(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, pair, err := svc.Login(context.Background(), LoginInput{Email: "sebas@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.ResetPassword(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.created) != 0 || len(repo.updated) != 0 {
		t.Fatal("reset for unknown email must not write anything")
	}
}

func TestResetPassword_GeneratesUsableTemporary(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	temp, err := svc.ResetPassword(context.Background(), "sebas@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !regexp.MustCompile(`^[A-Z][0-9]{5}$`).MatchString(temp) {
		t.Fatalf("temporary password %q has wrong shape", temp)
	}

	hash, ok := repo.updated[created.ID]
	if !ok {
		t.Fatal("expected stored hash to be overwritten")
	}
	if err := password.Compare(hash, temp); err != nil {
		t.Fatalf("temporary password must verify against stored hash: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "sebas@example.com", Password: temp}); err != nil {
		t.Fatalf("login with temporary password failed: %v", err)
	}
}

func TestResetPassword_RateLimited(t *testing.T) {
	repo := newMockUserRepo()
	limiter := &mockLimiter{allowed: false}
	svc := newTestService(repo, limiter)

	if _, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.ResetPassword(context.Background(), "sebas@example.com"); !errors.Is(err, ErrTooManyResets) {
		t.Fatalf("expected ErrTooManyResets, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected limiter consulted once, got %d", limiter.calls)
	}
}

func TestResetPassword_LimiterFailureIsOpen(t *testing.T) {
	repo := newMockUserRepo()
	limiter := &mockLimiter{allowed: false, err: errors.New("redis down")}
	svc := newTestService(repo, limiter)

	if _, err := svc.Signup(context.Background(), SignupInput{Name: "Sebas", Email: "sebas@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.ResetPassword(context.Background(), "sebas@example.com"); err != nil {
		t.Fatalf("limiter failure must not block resets: %v", err)
	}
}
