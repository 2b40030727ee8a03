// Package errors provides the classified errors returned across sitepack.
//
// A failure leaving a package boundary is a ClassifiedError built through one
// of the category constructors. The CLI adapter maps its category to an exit
// code and decides how much of it to show.
//
//	err := errors.ToolchainError("cannot determine tool version").
//		WithContext("tool", "vue-loader").
//		WithCause(readErr).
//		Build()
package errors
