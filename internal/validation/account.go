package validation

import (
	"strings"

	"github.com/hongminglow/postboard/internal/models/dto"
)

type registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration checks a sign-up request. Name and email are compared trimmed;
// the password must be at least 8 characters.
func Registration(req dto.RegisterRequest) error {
	return check(registration{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
}
