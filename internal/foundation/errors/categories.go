package errors

// ErrorCategory classifies a failure for exit codes and user-facing output.
type ErrorCategory string

const (
	// Problems in the project or the invocation; the user fixes these.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryRender     ErrorCategory = "render"

	// CategoryToolchain covers unreadable or missing tool version metadata.
	CategoryToolchain ErrorCategory = "toolchain"

	CategoryAssembly   ErrorCategory = "assembly"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// exitCode maps a category to the process exit status.
func (c ErrorCategory) exitCode() int {
	switch c {
	case CategoryValidation:
		return 2 // invalid usage
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7
	case CategoryToolchain:
		return 8
	case CategoryInternal:
		return 10
	case CategoryAssembly, CategoryRender, CategoryFileSystem:
		return 11
	case CategoryRuntime:
		return 12
	default:
		return 1
	}
}

// describesInput reports whether the message alone tells the user what to change.
func (c ErrorCategory) describesInput() bool {
	switch c {
	case CategoryConfig, CategoryValidation, CategoryNotFound, CategoryRender, CategoryToolchain:
		return true
	}
	return false
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // stops the command
	SeverityError ErrorSeverity = "error" // fails the current operation only
)

// RetryStrategy says whether running again can succeed without a change by the user.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryUserAction RetryStrategy = "user"
)

// ErrorContext carries structured details that are logged with the error.
type ErrorContext map[string]any
