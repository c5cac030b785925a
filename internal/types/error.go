package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Machine readable error codes returned in the response envelope.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeAuthRequired ErrorCode = "AUTHENTICATION_REQUIRED"
	CodePermission   ErrorCode = "PERMISSION_DENIED"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Response is the envelope every endpoint answers with. Business rule
// rejections are returned with Success=false and a machine readable
// Error code, never as a bare 500.
type Response struct {
	Data    any                `json:"data,omitempty"`
	Fields  *map[string]string `json:"fields,omitempty"`
	Error   string             `json:"error,omitempty"`
	Message string             `json:"message,omitempty"`
	Success bool               `json:"success"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Fail(code ErrorCode, message string) Response {
	return Response{Success: false, Error: string(code), Message: message}
}

// ValidationFail maps validator/v10 errors onto a per field message map.
func ValidationFail(err error) Response {
	validationErrors, ok := err.(validator.ValidationErrors)
	if ok {
		errorMap := make(map[string]string)
		for _, fieldError := range validationErrors {
			errorMap[fieldError.Field()] = fmt.Sprintf(
				"Failed to validate while checking condition: %s",
				fieldError.Tag(),
			)
		}

		return Response{
			Success: false,
			Error:   string(CodeValidation),
			Message: "validation error",
			Fields:  &errorMap,
		}
	}

	return Fail(CodeValidation, "validation error")
}

// FieldFail reports a validation failure pinned to specific fields.
func FieldFail(fields map[string]string) Response {
	return Response{
		Success: false,
		Error:   string(CodeValidation),
		Message: "validation error",
		Fields:  &fields,
	}
}
