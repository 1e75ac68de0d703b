package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/akarpov/finlog/models"
)

const passwordSpecials = "@$!%*?&"

// RegisterValidations installs custom binding rules on gin's validator
// engine. Safe to call more than once.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("password", passwordComplexity)
	}
}

// passwordComplexity requires at least one lowercase letter, one uppercase
// letter, one digit and one special character. Length is enforced by the
// min/max tags on the field.
func passwordComplexity(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// bindingErrorResponse translates a ShouldBindJSON error into a structured
// 400 body with per-field messages where the validator provides them.
func bindingErrorResponse(err error) models.ValidationErrorResponse {
	resp := models.ValidationErrorResponse{Error: "validation failed"}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		resp.Error = "invalid request body"
		return resp
	}

	resp.Fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		resp.Fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return resp
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "password":
		return "must contain a lowercase letter, an uppercase letter, a digit and one of " + passwordSpecials
	default:
		return "is invalid"
	}
}
