package submissions

import (
	"fmt"

	"github.com/hackwave-community/platform-api/internal/types"
)

// Rejection is an expected business refusal carried as a typed error
// value. Handlers branch on it with errors.As; it never represents a
// store or programming failure.
type Rejection struct {
	Fields  map[string]string
	Code    types.ErrorCode
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

func reject(code types.ErrorCode, message string) *Rejection {
	return &Rejection{Code: code, Message: message}
}

func rejectFields(fields map[string]string) *Rejection {
	return &Rejection{
		Code:    types.CodeValidation,
		Message: "validation error",
		Fields:  fields,
	}
}
