package errors

import (
	"errors"
	"sort"
)

// ErrorCategory groups errors by the kind of remediation they need.
type ErrorCategory string

const (
	CategoryStructural   ErrorCategory = "structural"
	CategoryExternalTool ErrorCategory = "external_tool"
	CategoryConsistency  ErrorCategory = "consistency"
	CategoryUserInput    ErrorCategory = "user_input"
	CategoryNotFound     ErrorCategory = "not_found"
	CategoryPrecondition ErrorCategory = "precondition"
	CategoryPartial      ErrorCategory = "partial_publish"
	CategoryInterrupted  ErrorCategory = "interrupted"
	CategoryUnknown      ErrorCategory = "unknown"
)

// Exit codes returned by the protosync CLI.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ClassifiedError attaches a category, an exit status and an operator hint
// to an error.
type ClassifiedError struct {
	Err      error
	Category ErrorCategory
	ExitCode int
	UserMsg  string
}

func (e *ClassifiedError) Error() string {
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// ClassifyError maps err onto the protosync taxonomy. Unknown errors are
// reported as generic failures.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case IsContextError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryInterrupted,
			ExitCode: ExitInterrupted,
			UserMsg:  "Interrupted. Files already written stay in place.",
		}

	case IsPartialPublishError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryPartial,
			ExitCode: ExitFailure,
			UserMsg:  "Publish stopped part way. Finish the pending steps by hand; local commit and tag were kept.",
		}

	case IsExternalToolError(err):
		code := ExitFailure
		var te *ExternalToolError
		if errors.As(err, &te) && te.ExitCode > 0 && te.ExitCode < 256 {
			code = te.ExitCode
		}
		return &ClassifiedError{
			Err:      err,
			Category: CategoryExternalTool,
			ExitCode: code,
			UserMsg:  "An external tool failed. Its output is shown above.",
		}

	case IsConsistencyError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryConsistency,
			ExitCode: ExitFailure,
			UserMsg:  "Services pin different protocol versions. Re-pin them or run a release.",
		}

	case IsPreconditionError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryPrecondition,
			ExitCode: ExitUsage,
			UserMsg:  "Publish preconditions are not met. Nothing was changed.",
		}

	case IsUserInputError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryUserInput,
			ExitCode: ExitUsage,
			UserMsg:  "Invalid input.",
		}

	case IsNotFoundError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryNotFound,
			ExitCode: ExitUsage,
			UserMsg:  "A required path does not exist.",
		}

	case IsStructuralError(err), errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidVersion):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryStructural,
			ExitCode: ExitUsage,
			UserMsg:  "Repository layout or configuration is inconsistent.",
		}

	default:
		return &ClassifiedError{
			Err:      err,
			Category: CategoryUnknown,
			ExitCode: ExitFailure,
			UserMsg:  "Unexpected error.",
		}
	}
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ClassifyError(err).ExitCode
}

// GetCategory returns the category of err, or CategoryUnknown.
func GetCategory(err error) ErrorCategory {
	classified := ClassifyError(err)
	if classified == nil {
		return CategoryUnknown
	}
	return classified.Category
}

// GetUserMessage returns the operator hint for err.
func GetUserMessage(err error) string {
	classified := ClassifyError(err)
	if classified == nil {
		return ""
	}
	return classified.UserMsg
}

// FormatErrorForLogging formats an error for structured logging
func FormatErrorForLogging(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	classified := ClassifyError(err)
	result := map[string]interface{}{
		"error":     err.Error(),
		"category":  string(classified.Category),
		"exit_code": classified.ExitCode,
	}

	var te *ExternalToolError
	if errors.As(err, &te) {
		result["tool"] = te.Tool
	}
	var se *StructuralError
	if errors.As(err, &se) {
		result["path"] = se.Path
	}

	return result
}

// LogError records err with its classification at debug level. The operator
// already sees the message; the fields are for diagnostics.
func LogError(logger interface{ Debug(string, ...interface{}) }, err error, msg string) {
	if err == nil {
		return
	}

	logData := FormatErrorForLogging(err)
	keys := make([]string, 0, len(logData))
	for k := range logData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(logData)*2)
	for _, k := range keys {
		args = append(args, k, logData[k])
	}

	logger.Debug(msg, args...)
}
