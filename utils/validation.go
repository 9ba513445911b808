package utils

import (
    "fmt"
    "strings"

    "github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
    validate = validator.New()
}

func ValidateStruct(s interface{}) error {
    return validate.Struct(s)
}

func SanitizeString(input string) string {
    return strings.TrimSpace(input)
}

// FormatValidationError flattens validator errors into one readable line
// so handlers can return the standard {message} error body.
func FormatValidationError(err error) string {
    validationErrors, ok := err.(validator.ValidationErrors)
    if !ok {
        return "Validation failed"
    }

    parts := make([]string, 0, len(validationErrors))
    for _, fieldError := range validationErrors {
        field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]
        switch fieldError.Tag() {
        case "required":
            parts = append(parts, fmt.Sprintf("%s is required", field))
        case "email":
            parts = append(parts, fmt.Sprintf("%s must be a valid email address", field))
        case "min":
            parts = append(parts, fmt.Sprintf("%s must be at least %s", field, fieldError.Param()))
        case "max":
            parts = append(parts, fmt.Sprintf("%s must be at most %s", field, fieldError.Param()))
        case "gt":
            parts = append(parts, fmt.Sprintf("%s must be greater than %s", field, fieldError.Param()))
        case "oneof":
            parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, fieldError.Param()))
        default:
            parts = append(parts, fmt.Sprintf("%s is invalid", field))
        }
    }

    return strings.Join(parts, "; ")
}
