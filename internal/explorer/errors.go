package explorer

// Error codes for the explorer error taxonomy.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeNotConnected   = "NOT_CONNECTED"
	CodeRemoteAPIError = "REMOTE_API_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
)

// ExplorerError represents an explorer layer error.
type ExplorerError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ExplorerError) Error() string {
	return e.Message
}

// NewError creates a new ExplorerError.
func NewError(code, message string) *ExplorerError {
	return &ExplorerError{Code: code, Message: message}
}

// NotFoundError signals an absent connection or resource.
func NotFoundError(message string) *ExplorerError {
	return NewError(CodeNotFound, message)
}

// NotConnectedError signals that no client is available for a connection.
func NotConnectedError(message string) *ExplorerError {
	return NewError(CodeNotConnected, message)
}

// RemoteError wraps an underlying transport or SDK failure with a
// caller-facing message; the cause lands in the details.
func RemoteError(message string, err error) *ExplorerError {
	details := map[string]interface{}{}
	if err != nil {
		details["cause"] = err.Error()
	}
	return &ExplorerError{
		Code:    CodeRemoteAPIError,
		Message: message,
		Details: details,
	}
}

// ValidationError signals invalid caller input, e.g. an empty name.
func ValidationError(message string) *ExplorerError {
	return NewError(CodeValidation, message)
}

// ErrorCode extracts the taxonomy code from an error, empty for foreign errors.
func ErrorCode(err error) string {
	if e, ok := err.(*ExplorerError); ok {
		return e.Code
	}
	return ""
}
