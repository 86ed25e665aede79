package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error writes a JSON error body with the given status.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// InternalError logs err and answers 500 without exposing it.
func InternalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

	return Error(c, fiber.StatusInternalServerError, "internal server error")
}

// Bind parses the JSON body into out and validates it.
// On failure the 400 response is already written and handled is true.
func Bind(c *fiber.Ctx, v *validator.Validate, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return true, Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	err := v.Struct(out)
	if err == nil {
		return false, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return true, InternalError(c, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fe.Tag()
	}

	return true, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:  "validation failed",
		Fields: fields,
	})
}

// ID reads the numeric id route parameter.
func ID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt(IDParam)
	if err != nil || id <= 0 {
		return 0, false
	}

	return uint(id), true
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}

	return fe.Field()
}
