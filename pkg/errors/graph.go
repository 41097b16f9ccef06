package errors

import "fmt"

// DuplicateTitleError is returned when two ingested documents share a title.
// Titles alone define document identity; the other fields are not compared.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("duplicate title: %q", e.Title)
}

// Code returns ErrCodeDuplicateTitle.
func (e *DuplicateTitleError) Code() Code { return ErrCodeDuplicateTitle }

// FocalNodeNotFoundError is returned when the requested focal title matches
// no ingested document.
type FocalNodeNotFoundError struct {
	Title string
}

func (e *FocalNodeNotFoundError) Error() string {
	return fmt.Sprintf("focal document not found: %q", e.Title)
}

// Code returns ErrCodeFocalNodeNotFound.
func (e *FocalNodeNotFoundError) Code() Code { return ErrCodeFocalNodeNotFound }

// UnresolvedDependencyError is returned when a dependency reference names a
// title that is not among the resolvable documents. Documents excluded by a
// tag filter are not resolvable.
type UnresolvedDependencyError struct {
	From       string // title of the referencing document
	Dependency string // referenced title that could not be found
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("unresolved dependency: %q depends on %q, which does not exist", e.From, e.Dependency)
}

// Code returns ErrCodeUnresolvedDependency.
func (e *UnresolvedDependencyError) Code() Code { return ErrCodeUnresolvedDependency }

// MalformedMetadataError is returned when a document's metadata block cannot
// be decoded. Source is usually the document path.
type MalformedMetadataError struct {
	Source string
	Cause  error
}

func (e *MalformedMetadataError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("malformed metadata in %s", e.Source)
	}
	return fmt.Sprintf("malformed metadata in %s: %v", e.Source, e.Cause)
}

// Code returns ErrCodeMalformedMetadata.
func (e *MalformedMetadataError) Code() Code { return ErrCodeMalformedMetadata }

// Unwrap returns the decoding error.
func (e *MalformedMetadataError) Unwrap() error { return e.Cause }

// DuplicateTitle creates a DuplicateTitleError.
func DuplicateTitle(title string) error {
	return &DuplicateTitleError{Title: title}
}

// FocalNodeNotFound creates a FocalNodeNotFoundError.
func FocalNodeNotFound(title string) error {
	return &FocalNodeNotFoundError{Title: title}
}

// UnresolvedDependency creates an UnresolvedDependencyError.
func UnresolvedDependency(from, dep string) error {
	return &UnresolvedDependencyError{From: from, Dependency: dep}
}

// MalformedMetadata creates a MalformedMetadataError.
func MalformedMetadata(source string, cause error) error {
	return &MalformedMetadataError{Source: source, Cause: cause}
}

// IsGraphError reports whether err is one of the fatal graph construction kinds.
func IsGraphError(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateTitle, ErrCodeFocalNodeNotFound,
		ErrCodeUnresolvedDependency, ErrCodeMalformedMetadata:
		return true
	}
	return false
}
