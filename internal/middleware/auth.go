package middleware

import (
	"context"
	"momnt-server/internal/model"
	"momnt-server/internal/modules/common/httpx"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextHostIDKey = "host_id"
	ContextHostKey   = "host"
)

const unauthorizedMessage = "Not authorized"

// HostResolver verifies bearer tokens and loads the host they identify.
type HostResolver interface {
	VerifyToken(token string) (string, error)
	ResolveHost(ctx context.Context, hostID string) (*model.Host, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func resolve(c *gin.Context, resolver HostResolver) (*model.Host, bool) {
	token, ok := bearerToken(c)
	if !ok {
		return nil, false
	}
	hostID, err := resolver.VerifyToken(token)
	if err != nil {
		return nil, false
	}
	host, err := resolver.ResolveHost(c.Request.Context(), hostID)
	if err != nil || host == nil {
		return nil, false
	}
	return host, true
}

// JWTAuth requires a valid bearer token for a host that still exists.
func JWTAuth(resolver HostResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, ok := resolve(c, resolver)
		if !ok {
			httpx.AbortWithError(c, http.StatusUnauthorized, "unauthorized", unauthorizedMessage)
			return
		}

		c.Set(ContextHostIDKey, host.ID)
		c.Set(ContextHostKey, host)
		c.Next()
	}
}

// OptionalJWTAuth attaches the host when a valid token is present and never
// rejects the request.
func OptionalJWTAuth(resolver HostResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if host, ok := resolve(c, resolver); ok {
			c.Set(ContextHostIDKey, host.ID)
			c.Set(ContextHostKey, host)
		}
		c.Next()
	}
}

// CurrentHostID returns the authenticated host ID, if any.
func CurrentHostID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextHostIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CurrentHost returns the authenticated host, if any.
func CurrentHost(c *gin.Context) (*model.Host, bool) {
	v, ok := c.Get(ContextHostKey)
	if !ok {
		return nil, false
	}
	host, ok := v.(*model.Host)
	return host, ok && host != nil
}
