package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

func newError(category ErrorCategory, severity ErrorSeverity, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: severity,
		retry:    RetryNever,
		message:  message,
	}}
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.err.context == nil {
		b.err.context = make(ErrorContext)
	}
	b.err.context[key] = value
	return b
}

// UserAction marks the error as needing a change by the user before a rerun.
func (b *ErrorBuilder) UserAction() *ErrorBuilder {
	b.err.retry = RetryUserAction
	return b
}

// Build returns the error. The builder may not be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

// ConfigError reports an unusable project file or env file.
func ConfigError(message string) *ErrorBuilder {
	return newError(CategoryConfig, SeverityFatal, message).UserAction()
}

// ValidationError reports invalid flags or project settings.
func ValidationError(message string) *ErrorBuilder {
	return newError(CategoryValidation, SeverityFatal, message).UserAction()
}

// NotFoundError reports a missing project file.
func NotFoundError(message string) *ErrorBuilder {
	return newError(CategoryNotFound, SeverityError, message).UserAction()
}

// ToolchainError reports unreadable tool version metadata.
func ToolchainError(message string) *ErrorBuilder {
	return newError(CategoryToolchain, SeverityFatal, message)
}

// AssemblyError reports a descriptor that cannot be built from the settings.
func AssemblyError(message string) *ErrorBuilder {
	return newError(CategoryAssembly, SeverityFatal, message)
}

// RenderError reports an HTML template that does not render to a usable page.
func RenderError(message string) *ErrorBuilder {
	return newError(CategoryRender, SeverityFatal, message).UserAction()
}

// FileSystemError reports a failed read or write of a project or output file.
func FileSystemError(message string) *ErrorBuilder {
	return newError(CategoryFileSystem, SeverityError, message)
}

// RuntimeError reports a failure of the process environment (listeners, watchers).
func RuntimeError(message string) *ErrorBuilder {
	return newError(CategoryRuntime, SeverityError, message)
}

// InternalError reports a broken invariant inside sitepack.
func InternalError(message string) *ErrorBuilder {
	return newError(CategoryInternal, SeverityFatal, message)
}
