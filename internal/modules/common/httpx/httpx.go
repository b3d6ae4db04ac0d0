package httpx

import (
	"errors"
	"log"
	"momnt-server/internal/platform/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		body := gin.H{"error": serviceErr.Message, "code": serviceErr.Reason}
		if serviceErr.Details != nil {
			body["details"] = serviceErr.Details
		}
		c.JSON(ServiceErrorStatus(serviceErr.Code), body)
		return
	}
	log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage, "code": string(service.ErrorCodeInternal)})
}

// WriteBindError answers a request whose body failed binding with 400.
func WriteBindError(c *gin.Context, err error) {
	WriteServiceError(c, BindError(err), "Invalid request")
}

// BindError converts a gin binding error into a validation ServiceError.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: jsonFieldName(fe), Rule: fe.Tag()})
		}
		return service.WithDetails(service.NewReasonError(service.ErrorCodeValidation, "invalid_request", "Invalid request"), fields)
	}
	return service.NewReasonError(service.ErrorCodeValidation, "invalid_request", "Invalid request")
}

func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// AbortWithError writes the same body as WriteServiceError and aborts the chain.
func AbortWithError(c *gin.Context, status int, reason, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": reason})
}

func ServiceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case service.ErrorCodeRateLimited:
		return http.StatusTooManyRequests
	case service.ErrorCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
