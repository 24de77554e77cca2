package converter

import (
	"fmt"
)

// RecordError reports a record that could not be converted. Err is either a
// types.ErrMissingField lookup failure or a filesystem error.
type RecordError struct {
	// Row is the 1-based source row of the record.
	Row int

	// Column is set when the failure was a missing field.
	Column string

	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
