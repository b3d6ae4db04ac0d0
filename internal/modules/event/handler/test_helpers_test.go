package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"momnt-server/internal/config"
	"momnt-server/internal/middleware"
	"momnt-server/internal/model"
	"momnt-server/internal/modules/event/repo"
	eventservice "momnt-server/internal/modules/event/service"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubResolver maps bearer tokens straight to hosts.
type stubResolver map[string]*model.Host

func (s stubResolver) VerifyToken(token string) (string, error) {
	host, ok := s[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return host.ID, nil
}

func (s stubResolver) ResolveHost(_ context.Context, hostID string) (*model.Host, error) {
	for _, host := range s {
		if host.ID == hostID {
			return host, nil
		}
	}
	return nil, errors.New("host not found")
}

type testEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	service *eventservice.Service
	hub     *notify.Hub
	host    *model.Host
	other   *model.Host
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })
	config.Set(config.Config{
		Storage: config.StorageConfig{TimeoutSeconds: 2},
		Upload:  config.UploadConfig{MaxFiles: 5, MaxFileSizeMB: 10, CoverMaxWidth: 800, CoverMaxHeight: 600},
	})

	gdb := testutils.SetupDB(t)
	env := &testEnv{
		db:    gdb,
		host:  &model.Host{Email: "host@x.com", Password: "x"},
		other: &model.Host{Email: "other@x.com", Password: "x"},
		hub:   notify.NewHub(),
	}
	if err := gdb.Create(env.host).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}
	if err := gdb.Create(env.other).Error; err != nil {
		t.Fatalf("create host: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go env.hub.Run(ctx)

	env.service = eventservice.New(platformservice.NewAppService(nil), repo.NewEventRepository(gdb),
		testutils.NewMemoryGateway(), env.hub)
	h := New(env.service, env.hub, notify.NewUpgrader("*"))

	resolver := stubResolver{"host-token": env.host, "other-token": env.other}
	r := gin.New()
	events := r.Group("/api/events")
	events.POST("/create", middleware.JWTAuth(resolver), h.Create)
	events.GET("/host", middleware.JWTAuth(resolver), h.ListByHost)
	events.GET("/:id", middleware.OptionalJWTAuth(resolver), h.Get)
	events.PUT("/:id", middleware.JWTAuth(resolver), h.Update)
	events.DELETE("/:id", middleware.JWTAuth(resolver), h.Delete)
	events.GET("/:id/uploads", h.ListUploads)
	events.DELETE("/:id/uploads/:uploadId", middleware.JWTAuth(resolver), h.DeleteUpload)
	events.GET("/:id/live", h.Live)
	env.router = r
	return env
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
