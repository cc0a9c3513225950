package errors

// DatasetError is the fatal startup error for a broken dataset install.
// Both the server and the report CLI refuse to run on one. Dir names the
// data directory that was inspected; Cause may aggregate several input
// problems via errors.Join.
type DatasetError struct {
	Dir   string
	Msg   string
	Cause error
}

func (e *DatasetError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Cause.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *DatasetError) Unwrap() error {
	return e.Cause
}

// NewDatasetError builds a DatasetError rooted at dir. The cause may be nil.
func NewDatasetError(dir, msg string, cause error) *DatasetError {
	return &DatasetError{Dir: dir, Msg: msg, Cause: cause}
}
