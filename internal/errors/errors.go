package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeNotFound        ErrorType = "NOT_FOUND"
	TypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	TypeBackend         ErrorType = "BACKEND"
	TypeCancelled       ErrorType = "CANCELLED"
	TypeConfiguration   ErrorType = "CONFIGURATION"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// NewNotFound creates a NOT_FOUND error for a missing resource
func NewNotFound(msg string, err error) *AppError {
	return NewAppError(TypeNotFound, msg, err)
}

// NewInvalidArgument creates an INVALID_ARGUMENT error for a bad caller input
func NewInvalidArgument(msg string) *AppError {
	return NewAppError(TypeInvalidArgument, msg, nil)
}

// NewBackend creates a BACKEND error for a failed external command
func NewBackend(msg string, err error) *AppError {
	return NewAppError(TypeBackend, msg, err)
}

// ErrUserCancelled is returned when the user explicitly cancels an
// interactive operation. It is not a failure: main converts it into a
// neutral notice and a zero exit status.
var ErrUserCancelled = NewAppError(TypeCancelled, "Operation cancelled by user", nil)

// Review argument validation errors
var (
	ErrBothBackendArgs = NewAppError(TypeInvalidArgument,
		"Provide arguments for either OBS (--project) or Gitea, not both", nil).
		WithSuggestion("Use --project for OBS, or --repository, --branch and --reviewer for Gitea")

	ErrNoBackendArgs = NewAppError(TypeInvalidArgument,
		"No backend selected", nil).
		WithSuggestion("For OBS pass --project. For Gitea pass --repository, --branch AND --reviewer")

	ErrStagingRequiresProject = NewAppError(TypeInvalidArgument,
		"--project is required when using --staging or --bugowner", nil)

	ErrPrsRequireGitea = NewAppError(TypeInvalidArgument,
		"--prs can only be used with Gitea arguments (--repository, --branch, --reviewer)", nil)

	ErrInvalidPrList = NewAppError(TypeInvalidArgument,
		"--prs must be a comma-separated list of numbers", nil)

	ErrInvalidStaging = NewAppError(TypeInvalidArgument,
		"Staging must be a single letter", nil)
)

// Configuration errors
var (
	ErrNoAPIURL = NewAppError(TypeConfiguration, "Build-service API URL is not set", nil).
		WithSuggestion("Pass --apiurl or set api_url in the config file")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration file is invalid", nil).
		WithSuggestion("Check the YAML syntax of your config file")
)
