package router

import (
	"momnt-server/internal/middleware"
	"momnt-server/internal/modules"
	"momnt-server/internal/platform/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	service *service.AppService
	counter middleware.WindowCounter
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService) *Router {
	return &Router{
		modules: appModules,
		service: appService,
		counter: middleware.NewWindowCounter(appService),
	}
}

func (rt *Router) Init(r *gin.Engine) {
	cfg := rt.service.Config()

	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	registerMediaRoutes(r, cfg.Storage.Driver, cfg.Storage.Local.URLPrefix, cfg.Storage.Local.Path)

	api := r.Group("/api")
	// multipart routes carry their own, larger limit
	api.Use(middleware.BodyLimitMiddleware(0, "/upload", "/events/create"))
	api.Use(middleware.RateLimitMiddleware(rt.service))

	resolver := rt.modules.Auth.Service

	registerSystemRoutes(api, rt.modules.System.Handler)
	registerAuthRoutes(api, rt.modules.Auth.Handler, resolver)
	registerEventRoutes(api, rt.modules.Event.Handler, resolver, rt.service)
	registerUploadRoutes(api, rt.modules.Upload.Handler, rt.service, rt.counter)
}

// registerMediaRoutes serves stored objects when they live on local disk.
func registerMediaRoutes(r *gin.Engine, driver, urlPrefix, root string) {
	if driver != "" && driver != "local" {
		return
	}
	prefix := "/" + strings.Trim(urlPrefix, "/")
	if prefix == "/" || root == "" {
		return
	}

	media := r.Group(prefix)
	media.Use(middleware.StaticCacheMiddleware(""))
	media.Static("/", root)
}
