package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks a bound request DTO against its `validate` tags and
// converts failures into a 400 with a readable field list.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fiber.NewError(fiber.StatusBadRequest, "Validation failed: "+strings.Join(fields, ", "))
}
