// Package result defines the single result code a jump list operation
// resolves to. Many independent sub-operations can fail inside one
// transaction; Combine folds their outcomes into the one code the caller
// sees.
package result

// Code is the outcome of a set-jump-list call.
type Code string

const (
	// Success means the transaction committed and every category and item
	// was accepted.
	Success Code = "ok"
	// ArgumentError means the caller's input was malformed; nothing reached
	// the platform service.
	ArgumentError Code = "argumentError"
	// GenericError covers unspecified platform or transaction failures, and
	// partial success (the committed list is missing some entries).
	GenericError Code = "error"
	// CustomCategorySeparatorError means a separator appeared outside the
	// standard Tasks category.
	CustomCategorySeparatorError Code = "invalidSeparatorError"
	// MissingFileTypeRegistrationError means a custom category referenced a
	// file type the app is not registered to handle.
	MissingFileTypeRegistrationError Code = "fileTypeRegistrationError"
	// CustomCategoryAccessDeniedError means a user privacy setting blocks
	// custom categories.
	CustomCategoryAccessDeniedError Code = "customCategoryAccessDeniedError"
)

func (c Code) String() string {
	return string(c)
}

// Ok reports whether the operation fully succeeded.
func (c Code) Ok() bool {
	return c == Success
}

// Combine folds one category's outcome into the running result. The first
// non-generic, non-success code wins and is sticky: a generic error may be
// replaced by a later, more specific one, but a specific error is never
// overwritten. Specific codes are more actionable than "something failed".
func Combine(current, latest Code) Code {
	if (current == Success || current == GenericError) && latest != Success {
		return latest
	}
	return current
}
