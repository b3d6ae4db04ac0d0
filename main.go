package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"momnt-server/internal/config"
	"momnt-server/internal/consts"
	"momnt-server/internal/db"
	"momnt-server/internal/di"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "config", "directory holding config.yaml")
	exportRoutes := flag.Bool("export", false, "write routes to routes.json and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ failed to load .env: %v", err)
	}

	config.InitConfig(*configDir)
	db.InitDB()
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("⚠️ close database: %v", err)
		}
	}()

	ensureStorageDirectory()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := di.InitializeApplication(ctx, db.DB)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}
	defer cleanup()

	gin.SetMode(config.Get().Server.Mode)
	r := gin.Default()
	applyTrustedProxies(r, config.Get().Server.TrustedProxies)
	app.Router.Init(r)

	distFS := GetFrontendAssets()
	indexData := setupFrontend(r, distFS)
	r.NoRoute(getNoRouteHandler(distFS, indexData))

	if *exportRoutes {
		exportAPI(r)
		return
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:              ":" + config.Get().Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  Version  : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️   Storage  : %s\n", config.Get().Storage.Driver)
	fmt.Printf(" │   🔥  Port     : %s\n", config.Get().Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func splitTrustedProxyList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\n', '\t', '\r':
			return true
		}
		return false
	})
}

// applyTrustedProxies trusts X-Forwarded-For only from the configured proxies.
// An empty or invalid list trusts nobody.
func applyTrustedProxies(r *gin.Engine, value string) {
	proxies := splitTrustedProxyList(value)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Printf("⚠️ invalid trusted_proxies %q, trusting no proxy: %v", value, err)
		_ = r.SetTrustedProxies(nil)
	}
}

func getNoRouteHandler(distFS fs.FS, indexData []byte) gin.HandlerFunc {
	mediaPrefix := "/" + strings.Trim(config.Get().Storage.Local.URLPrefix, "/") + "/"

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API not found", "code": "not_found"})
			return
		}
		if strings.HasPrefix(path, mediaPrefix) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found", "code": "not_found"})
			return
		}
		if distFS == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "not_found"})
			return
		}

		name := strings.TrimPrefix(path, "/")
		if name != "" {
			if f, err := distFS.Open(name); err == nil {
				stat, statErr := f.Stat()
				_ = f.Close()
				if statErr == nil && !stat.IsDir() {
					c.FileFromFS(name, http.FS(distFS))
					return
				}
			}
		}

		// SPA fallback
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexData)
	}
}

func exportAPI(r *gin.Engine) {
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	routes := r.Routes()
	exportList := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	if err := os.WriteFile("routes.json", file, 0644); err != nil {
		log.Printf("❌ write routes.json: %v", err)
		return
	}
	log.Println("✅ Routes exported to routes.json")
}

// ensureStorageDirectory validates and creates the local storage root.
func ensureStorageDirectory() string {
	cfg := config.Get().Storage
	if cfg.Driver != "" && cfg.Driver != "local" {
		return ""
	}
	path := cfg.Local.Path
	if path == "" {
		path = "uploads"
	}
	checkSecurePath(path)
	if err := os.MkdirAll(path, 0755); err != nil {
		log.Fatalf("❌ cannot create storage directory: %v", err)
	}
	return path
}

// checkSecurePath refuses storage roots that would expose the source tree.
func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ cannot resolve path: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ cannot read working directory: %v", err)
	}

	if absPath == cwd {
		log.Fatalf("❌ storage directory '%s' must not be the project root", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		relSlash := filepath.ToSlash(rel)
		allowedDirs := []string{"uploads", "public", "media", "static", "tmp"}

		firstComponent := strings.Split(relSlash, "/")[0]
		for _, allowed := range allowedDirs {
			if strings.EqualFold(firstComponent, allowed) {
				return
			}
		}
		log.Fatalf("❌ storage directory '%s' (resolved to '%s') must live under one of %v", path, relSlash, allowedDirs)
	}
}
