package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/internal/googleauth"
	"github.com/blogsphere/blogsphere/internal/models"
	postrepo "github.com/blogsphere/blogsphere/internal/posts/repository"
	postservice "github.com/blogsphere/blogsphere/internal/posts/service"
	"github.com/blogsphere/blogsphere/internal/tokens"
	"github.com/blogsphere/blogsphere/internal/users"
	"github.com/blogsphere/blogsphere/pkg/middleware"
)

// fakeUserRepo backs the user service with a map
type fakeUserRepo struct {
	byGoogleID map[string]*models.User
	byID       map[string]*models.User
	creates    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byGoogleID: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return f.byGoogleID[googleID], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.creates++
	u.ID = fmt.Sprintf("uid-%d", f.creates)
	u.CreatedAt = time.Now().UTC()
	f.byGoogleID[u.GoogleID] = u
	f.byID[u.ID] = u
	return u, nil
}

type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	userRepo *fakeUserRepo
	userSvc  *users.Service
	issuer   *tokens.Issuer
}

func newTestEnv(t *testing.T, google config.GoogleConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxxxx"
	cfg.CORS.FrontendURL = "http://localhost:5173"
	cfg.Google = google

	userRepo := newFakeUserRepo()
	userSvc := users.NewService(userRepo)
	issuer := tokens.NewIssuer(cfg.JWT.Secret, 0)
	postSvc := postservice.New(postrepo.NewMemoryRepository())

	r := gin.New()
	requireAuth := middleware.RequireAuth(issuer, userSvc)
	root := r.Group("/")
	NewAuthHandler(cfg, googleauth.New(context.Background(), cfg.Google), userSvc, issuer).Register(root, requireAuth)
	NewPostsHandler(postSvc, userSvc).Register(root, requireAuth)

	return &testEnv{router: r, cfg: cfg, userRepo: userRepo, userSvc: userSvc, issuer: issuer}
}

// login creates a user (first login) and mints a token for it
func (e *testEnv) login(t *testing.T, googleID, name, email string) (*models.User, string) {
	t.Helper()
	u, err := e.userSvc.GetOrCreate(context.Background(), googleID, name, email, "")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	tok, err := e.issuer.Issue(u.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return u, tok
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
