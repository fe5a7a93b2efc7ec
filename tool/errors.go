package tool

import "fmt"

// Error codes used across tool implementations.
const (
	// CodeExecution marks a generic runtime failure inside the tool.
	CodeExecution = "EXECUTION_ERROR"
	// CodeMissingCredential marks a tool invoked without its API key or token.
	CodeMissingCredential = "MISSING_CREDENTIAL"
	// CodeHTTP marks an upstream HTTP failure (network error, non-2xx status).
	CodeHTTP = "HTTP_ERROR"
	// CodeTimeout marks a tool call that exceeded its deadline.
	CodeTimeout = "TIMEOUT"
)

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// WrapError normalizes err into a *ToolError attributed to tool. Existing
// ToolErrors are forwarded unchanged.
func WrapError(tool string, err error) *ToolError {
	if toolErr, ok := err.(*ToolError); ok {
		return toolErr
	}
	return NewToolError(tool, err.Error(), CodeExecution)
}
