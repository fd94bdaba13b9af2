package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MajQs/WineLog/internal/auth"
	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/internal/dashboard"
	"github.com/MajQs/WineLog/internal/notes"
	"github.com/MajQs/WineLog/internal/ratings"
	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/internal/templates"
	pkgauth "github.com/MajQs/WineLog/pkg/auth"
	"github.com/MajQs/WineLog/pkg/config"
	"github.com/MajQs/WineLog/pkg/enums"
	"github.com/MajQs/WineLog/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterCommand) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Login(context.Context, auth.LoginCommand) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Refresh(context.Context, auth.RefreshCommand) (*auth.TokenPair, error) {
	return &auth.TokenPair{}, nil
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

func (stubAuthService) ForgotPassword(context.Context, auth.ForgotPasswordCommand) (string, error) {
	return "", nil
}

func (stubAuthService) ResetPassword(context.Context, auth.ResetPasswordCommand) error {
	return nil
}

func (stubAuthService) DeleteAccount(context.Context, uuid.UUID, string, auth.DeleteAccountCommand) error {
	return nil
}

type stubTemplateService struct{}

func (stubTemplateService) List(context.Context, *enums.BatchType) (*templates.ListResult, error) {
	return &templates.ListResult{Templates: []templates.ListItemDTO{}}, nil
}

func (stubTemplateService) Get(context.Context, uuid.UUID) (*templates.DetailDTO, error) {
	return &templates.DetailDTO{}, nil
}

type stubBatchService struct{}

func (stubBatchService) Create(context.Context, uuid.UUID, batches.CreateCommand) (*batches.DetailDTO, error) {
	return &batches.DetailDTO{}, nil
}

func (stubBatchService) List(context.Context, uuid.UUID, batches.ListFilters) (*batches.ListResult, error) {
	return &batches.ListResult{Batches: []batches.ListItemDTO{}}, nil
}

func (stubBatchService) Get(context.Context, uuid.UUID, uuid.UUID) (*batches.DetailDTO, error) {
	return &batches.DetailDTO{}, nil
}

func (stubBatchService) Rename(context.Context, uuid.UUID, uuid.UUID, batches.RenameCommand) (*batches.RenameResult, error) {
	return &batches.RenameResult{}, nil
}

func (stubBatchService) Complete(context.Context, uuid.UUID, uuid.UUID) (*batches.CompleteResult, error) {
	return &batches.CompleteResult{}, nil
}

func (stubBatchService) Delete(context.Context, uuid.UUID, uuid.UUID) (*batches.DeleteResult, error) {
	return &batches.DeleteResult{}, nil
}

type stubStageService struct{}

func (stubStageService) Advance(context.Context, uuid.UUID, uuid.UUID, *stages.AdvanceNote) (*stages.AdvanceResult, error) {
	return &stages.AdvanceResult{}, nil
}

func (stubStageService) Current(context.Context, uuid.UUID, uuid.UUID) (*stages.CurrentStageDetails, error) {
	return &stages.CurrentStageDetails{}, nil
}

type stubNoteService struct{}

func (stubNoteService) Create(context.Context, uuid.UUID, uuid.UUID, notes.CreateCommand) (*stages.NoteDTO, error) {
	return &stages.NoteDTO{}, nil
}

func (stubNoteService) List(context.Context, uuid.UUID, uuid.UUID, notes.ListFilters) (*notes.ListResult, error) {
	return &notes.ListResult{Notes: []stages.NoteDTO{}}, nil
}

func (stubNoteService) Delete(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*notes.DeleteResult, error) {
	return &notes.DeleteResult{}, nil
}

type stubRatingService struct{}

func (stubRatingService) Get(context.Context, uuid.UUID, uuid.UUID) (*ratings.DTO, error) {
	return &ratings.DTO{}, nil
}

func (stubRatingService) Upsert(context.Context, uuid.UUID, uuid.UUID, ratings.UpsertCommand) (*ratings.DTO, bool, error) {
	return &ratings.DTO{}, false, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Get(context.Context, uuid.UUID) (*dashboard.DTO, error) {
	return &dashboard.DTO{ActiveBatches: []dashboard.ActiveBatchDTO{}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "winelog",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: zerolog.Disabled, Output: io.Discard})
	return NewRouter(Dependencies{
		Cfg:      cfg,
		Logg:     logg,
		DB:       stubPinger{},
		Sessions: stubSessionChecker{},

		AuthService:      stubAuthService{},
		TemplateService:  stubTemplateService{},
		BatchService:     stubBatchService{},
		StageService:     stubStageService{},
		NoteService:      stubNoteService{},
		RatingService:    stubRatingService{},
		DashboardService: stubDashboardService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "vintner@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, target := range []string{"/api/v1/batches", "/api/v1/dashboard", "/api/v1/templates"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", target, rec.Code)
		}
	}
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code == http.StatusUnauthorized {
		t.Fatal("expected forgot-password to be reachable without a token")
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from liveness, got %d", rec.Code)
	}
}

func TestBatchSubroutesResolve(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg)
	batchID := uuid.NewString()

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/batches/" + batchID},
		{http.MethodGet, "/api/v1/batches/" + batchID + "/stages/current"},
		{http.MethodGet, "/api/v1/batches/" + batchID + "/notes"},
		{http.MethodGet, "/api/v1/batches/" + batchID + "/rating"},
	} {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusNotFound && rec.Body.String() == "404 page not found\n" {
			t.Fatalf("%s %s: route not registered", tc.method, tc.target)
		}
	}
}
