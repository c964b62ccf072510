// Package respond renders the JSON envelope every API endpoint speaks.
// Success payloads carry {"success": true, "data": ...}, failures carry
// {"success": false, "message": ...} plus an optional per-field errors
// map for validation failures.
package respond

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response body shape.
type Envelope struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Data writes a 200 with the payload.
func Data(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

// DataMessage writes a 200 with the payload and a human message.
func DataMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 with the payload and a human message.
func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data, Message: message})
}

// Message writes a 200 with a human message and no payload.
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(Envelope{Success: true, Message: message})
}

// Error writes a failure envelope with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// ValidationFailed writes a 422 with the per-field messages of err.
func ValidationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
		Success: false,
		Message: "The given data was invalid.",
		Errors:  FieldErrors(err),
	})
}

// FieldErrors flattens a validator error into a field -> messages map.
// Non-validator errors land under a generic "body" key so the client
// always gets the same shape.
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = []string{err.Error()}

		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		out[field] = append(out[field], fieldMessage(field, fe))
	}

	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
		}

		return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
		}

		return fmt.Sprintf("The %s may not be greater than %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", label)
	case "gt", "gte":
		return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
	}

	return fmt.Sprintf("The %s field is invalid.", label)
}

// NewValidator builds a validator that reports fields by their json tag
// so error maps match the request body, not the Go struct.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}
