package service

import (
	"errors"
	"strings"
	"time"

	platformservice "momnt-server/internal/platform/service"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

type titleField struct {
	Title string `validate:"required,max=100"`
}

// normalizeTitle trims and checks an event title.
func (s *Service) normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if err := s.validate.Struct(titleField{Title: title}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "max" {
			return "", platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_title",
				"Title must be at most 100 characters")
		}
		return "", platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_title", "Title is required")
	}
	return title, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(value string) (datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return datatypes.Date{}, platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_date", "Date is required")
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return datatypes.Date(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := t.Date()
		return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
	}
	return datatypes.Date{}, platformservice.NewReasonError(platformservice.ErrorCodeValidation, "invalid_date",
		"Date must be YYYY-MM-DD or an RFC 3339 timestamp")
}
