package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/sebastupa/testAssist/internal/delivery/http/middleware"
	"github.com/sebastupa/testAssist/internal/domain/job"
	"github.com/sebastupa/testAssist/internal/domain/preference"
	"github.com/sebastupa/testAssist/internal/domain/user"
	"github.com/sebastupa/testAssist/internal/pkg/response"
	ucauth "github.com/sebastupa/testAssist/internal/usecase/auth"
	ucjob "github.com/sebastupa/testAssist/internal/usecase/job"
	ucpref "github.com/sebastupa/testAssist/internal/usecase/preference"
)

type stubAuthUsecase struct {
	signupUser user.User
	signupErr  error
	resetPw    string
	resetErr   error
}

func (s stubAuthUsecase) Signup(context.Context, ucauth.SignupInput) (user.User, error) {
	return s.signupUser, s.signupErr
}

func (s stubAuthUsecase) Login(context.Context, ucauth.LoginInput) (user.User, ucauth.TokenPair, error) {
	return user.User{}, ucauth.TokenPair{}, ucauth.ErrInvalidCredentials
}

func (s stubAuthUsecase) Refresh(context.Context, string) (ucauth.TokenPair, error) {
	return ucauth.TokenPair{}, ucauth.ErrInvalidRefreshToken
}

func (s stubAuthUsecase) ResetPassword(context.Context, string) (string, error) {
	return s.resetPw, s.resetErr
}

type stubPreferenceUsecase struct {
	created   preference.Preferences
	createErr error
	updateErr error
}

func (s stubPreferenceUsecase) Create(context.Context, ucpref.CreateInput) (preference.Preferences, error) {
	return s.created, s.createErr
}

func (s stubPreferenceUsecase) Update(context.Context, string, ucpref.UpdateInput) error {
	return s.updateErr
}

type stubJobUsecase struct {
	added   job.Job
	addErr  error
	lastAdd ucjob.AddInput
	listed  []job.Job
	listErr error
}

func (s *stubJobUsecase) Add(_ context.Context, in ucjob.AddInput) (job.Job, error) {
	s.lastAdd = in
	return s.added, s.addErr
}

func (s *stubJobUsecase) List(context.Context, ucjob.ListParams) ([]job.Job, error) {
	return s.listed, s.listErr
}

func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, response.SemanticResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var env response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func TestSignupHandler_Created(t *testing.T) {
	u := user.User{ID: uuid.New(), Name: "Sebas", Email: "sebas@example.com"}
	app := newTestApp(func(a *fiber.App) {
		NewAuthHandler(stubAuthUsecase{signupUser: u}).RegisterRoutes(a)
	})

	resp, env := doJSON(t, app, http.MethodPost, "/signup",
		map[string]string{"name": "Sebas", "email": "sebas@example.com", "password": "hunter22"}, nil)

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected user payload, got %T", env.Data)
	}
	if data["id"] != u.ID.String() {
		t.Fatalf("unexpected id in payload: %v", data["id"])
	}
	if _, present := data["password_hash"]; present {
		t.Fatal("payload must not carry the password hash")
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	app := newTestApp(func(a *fiber.App) {
		NewAuthHandler(stubAuthUsecase{signupErr: ucauth.ErrEmailAlreadyRegistered}).RegisterRoutes(a)
	})

	resp, _ := doJSON(t, app, http.MethodPost, "/signup",
		map[string]string{"name": "Sebas", "email": "sebas@example.com", "password": "hunter22"}, nil)

	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestResetPasswordHandler(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewAuthHandler(stubAuthUsecase{resetErr: ucauth.ErrUserNotFound}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/reset-password",
			map[string]string{"email": "nobody@example.com"}, nil)
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("returns new password", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewAuthHandler(stubAuthUsecase{resetPw: "K12345"}).RegisterRoutes(a)
		})

		resp, env := doJSON(t, app, http.MethodPost, "/reset-password",
			map[string]string{"email": "sebas@example.com"}, nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if env.Message == "" {
			t.Fatal("expected confirmation message")
		}
		data, ok := env.Data.(map[string]any)
		if !ok || data["new_password"] != "K12345" {
			t.Fatalf("expected new_password in payload, got %v", env.Data)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewAuthHandler(stubAuthUsecase{resetErr: ucauth.ErrTooManyResets}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/reset-password",
			map[string]string{"email": "sebas@example.com"}, nil)
		if resp.StatusCode != fiber.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", resp.StatusCode)
		}
	})
}

func TestPreferenceHandler_Create(t *testing.T) {
	t.Run("user missing", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewPreferenceHandler(stubPreferenceUsecase{createErr: preference.ErrUserMissing}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/user-preferences",
			map[string]string{"user_id": uuid.NewString()}, nil)
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("created", func(t *testing.T) {
		p := preference.Preferences{ID: uuid.New(), UserID: uuid.New()}
		app := newTestApp(func(a *fiber.App) {
			NewPreferenceHandler(stubPreferenceUsecase{created: p}).RegisterRoutes(a)
		})

		resp, env := doJSON(t, app, http.MethodPost, "/user-preferences",
			map[string]string{"user_id": p.UserID.String(), "timezone": "UTC"}, nil)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		data, ok := env.Data.(map[string]any)
		if !ok || data["user_id"] != p.UserID.String() {
			t.Fatalf("unexpected payload: %v", env.Data)
		}
	})
}

func TestPreferenceHandler_Update(t *testing.T) {
	t.Run("no record", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewPreferenceHandler(stubPreferenceUsecase{updateErr: preference.ErrNotFound}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPut, "/update-preferences/"+uuid.NewString(),
			map[string]string{"timezone": "UTC"}, nil)
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("updated", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewPreferenceHandler(stubPreferenceUsecase{}).RegisterRoutes(a)
		})

		resp, env := doJSON(t, app, http.MethodPut, "/update-preferences/"+uuid.NewString(),
			map[string]string{"timezone": "UTC", "country": "RO"}, nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if env.Data != nil {
			t.Fatal("update returns a confirmation message, not the record")
		}
		if env.Message == "" {
			t.Fatal("expected confirmation message")
		}
	})
}

func TestJobHandler_Add(t *testing.T) {
	creator := uuid.New()
	body := map[string]any{
		"title":        "Backend Engineer",
		"company_name": "Acme",
		"location":     "Bucharest",
		"remote":       true,
		"job_types":    []string{"full-time", "contract"},
	}

	t.Run("missing identity", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewJobHandler(&stubJobUsecase{}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/add-job", body, nil)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("creator not found", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewJobHandler(&stubJobUsecase{addErr: ucjob.ErrCreatorNotFound}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/add-job", body,
			map[string]string{"X-AUTH-USER": uuid.NewString()})
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("created via legacy header", func(t *testing.T) {
		created := job.Job{
			ID:          uuid.New(),
			Title:       "Backend Engineer",
			CompanyName: "Acme",
			Location:    "Bucharest",
			Remote:      true,
			JobTypes:    []string{"full-time", "contract"},
			AddedBy:     creator,
		}
		uc := &stubJobUsecase{added: created}
		app := newTestApp(func(a *fiber.App) {
			NewJobHandler(uc).RegisterRoutes(a)
		})

		resp, env := doJSON(t, app, http.MethodPost, "/add-job", body,
			map[string]string{"X-AUTH-USER": creator.String()})
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		if uc.lastAdd.AddedBy != creator {
			t.Fatalf("expected creator %s passed to usecase, got %s", creator, uc.lastAdd.AddedBy)
		}

		data, ok := env.Data.(map[string]any)
		if !ok {
			t.Fatalf("expected job payload, got %T", env.Data)
		}
		types, ok := data["job_types"].([]any)
		if !ok || len(types) != 2 || types[0] != "full-time" || types[1] != "contract" {
			t.Fatalf("job_types not preserved: %v", data["job_types"])
		}
		if data["added_by"] != creator.String() {
			t.Fatalf("unexpected added_by: %v", data["added_by"])
		}
	})

	t.Run("malformed legacy header", func(t *testing.T) {
		app := newTestApp(func(a *fiber.App) {
			NewJobHandler(&stubJobUsecase{}).RegisterRoutes(a)
		})

		resp, _ := doJSON(t, app, http.MethodPost, "/add-job", body,
			map[string]string{"X-AUTH-USER": "not-a-uuid"})
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestJobHandler_List(t *testing.T) {
	items := []job.Job{{ID: uuid.New(), Title: "Backend Engineer"}}
	app := newTestApp(func(a *fiber.App) {
		NewJobHandler(&stubJobUsecase{listed: items}).RegisterRoutes(a)
	})

	resp, env := doJSON(t, app, http.MethodGet, "/jobs?limit=10", nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	list, ok := env.Data.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("unexpected listing payload: %v", env.Data)
	}
}
