package booking

import "fmt"

// ValidationError means the submission itself was malformed: a required field
// was missing or the date could not be parsed. Nothing was persisted or sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// StorageError wraps a failed write or query against the appointments table.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// EmailError wraps a failed notification dispatch.
type EmailError struct {
	Recipient string
	Err       error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("send email to %s: %v", e.Recipient, e.Err)
}

func (e *EmailError) Unwrap() error { return e.Err }
