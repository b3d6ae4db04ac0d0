package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"momnt-server/internal/config"
	"momnt-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "momnt-main-config-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("MOMNT_SERVER_MODE", "debug"),
		testutils.SetEnv("MOMNT_JWT_SECRET", "test_secret"),
		testutils.SetEnv("MOMNT_JWT_EXPIRATION_HOURS", "24"),
		testutils.SetEnv("MOMNT_STORAGE_DRIVER", "local"),
		testutils.SetEnv("MOMNT_STORAGE_LOCAL_PATH", "uploads/media"),
		testutils.SetEnv("MOMNT_STORAGE_LOCAL_URL_PREFIX", "/media/"),
		testutils.SetEnv("MOMNT_REDIS_ENABLED", "false"),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestSplitTrustedProxyList(t *testing.T) {
	got := splitTrustedProxyList(" 1.1.1.1,2.2.2.2; 3.3.3.3 \n4.4.4.4\t")
	if len(got) != 4 {
		t.Fatalf("expected 4 parts, got %v", got)
	}
}

func TestEmbedDisabledFrontendHooks(t *testing.T) {
	if GetFrontendAssets() != nil {
		t.Fatalf("expected nil frontend assets in non-embed build")
	}
	r := gin.New()
	if data := setupFrontend(r, nil); data != nil {
		t.Fatalf("expected nil index data in non-embed build")
	}
}

func TestExportAPI_WritesRoutesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(oldwd) }()

	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	exportAPI(r)

	b, err := os.ReadFile("routes.json")
	if err != nil {
		t.Fatalf("expected routes.json: %v", err)
	}
	var routes []map[string]any
	if err := json.Unmarshal(b, &routes); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(routes) == 0 {
		t.Fatalf("expected a non-empty route list")
	}
}

// Verifies API and media misses are 404 while other paths fall back to the SPA.
func TestGetNoRouteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dist := fstest.MapFS{
		"favicon.ico": &fstest.MapFile{Data: []byte("ico")},
	}
	r := gin.New()
	r.NoRoute(getNoRouteHandler(dist, []byte("<html>index</html>")))

	cases := []struct {
		path string
		code int
	}{
		{"/api/nope", http.StatusNotFound},
		{"/media/uploads/nope.jpg", http.StatusNotFound},
		{"/", http.StatusOK},
		{"/events/abc", http.StatusOK},
		{"/favicon.ico", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.code, w.Code)
		}
	}
}

func TestGetNoRouteHandler_DistFSNil(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.NoRoute(getNoRouteHandler(nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestEnsureStorageDirectory(t *testing.T) {
	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(oldwd) }()

	path := ensureStorageDirectory()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected storage dir to exist: %v", err)
	}
}

// Verifies that X-Forwarded-For is honoured only behind a configured proxy.
func TestApplyTrustedProxies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clientIP := func(proxies string) string {
		r := gin.New()
		applyTrustedProxies(r, proxies)
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return strings.TrimSpace(w.Body.String())
	}

	if got := clientIP(""); got != "10.0.0.1" {
		t.Fatalf("no proxies: expected RemoteAddr, got %q", got)
	}
	if got := clientIP("127.0.0.1,10.0.0.0/8"); got != "203.0.113.10" {
		t.Fatalf("trusted proxy: expected forwarded IP, got %q", got)
	}
	if got := clientIP("not-a-cidr"); got != "10.0.0.1" {
		t.Fatalf("invalid list: expected RemoteAddr, got %q", got)
	}
}

func TestPrintWelcomeMessage(t *testing.T) {
	printWelcomeMessage()
}
