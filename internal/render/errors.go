package render

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a record fails completeness validation.
// It carries every violated rule so the caller can show them all at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dữ liệu không hợp lệ: %s", strings.Join(e.Errors, "; "))
}

// EnvironmentError is returned when an operation needs a platform facility
// that is unavailable, such as a missing viewer or print command.
type EnvironmentError struct {
	Action  string
	Message string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// RenderError wraps a failure inside the PDF pipeline itself.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("không thể tạo file PDF (%s): %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
