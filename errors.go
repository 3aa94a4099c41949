package objpatch

import "fmt"

// ErrorKind classifies why an operation could not be applied. Every kind is
// also an error value so callers can match with errors.Is.
type ErrorKind uint8

const (
	TargetNotFound ErrorKind = iota + 1
	InvalidPath
	IndexOutOfBounds
	UnsupportedContainer
	InvalidValue
	PropertyNotReadable
	PropertyNotWritable
	TestFailed
	InvalidOperation
)

var kindNames = map[ErrorKind]string{
	TargetNotFound:       "target location not found",
	InvalidPath:          "invalid path",
	IndexOutOfBounds:     "index out of bounds",
	UnsupportedContainer: "unsupported container",
	InvalidValue:         "invalid value",
	PropertyNotReadable:  "property not readable",
	PropertyNotWritable:  "property not writable",
	TestFailed:           "test failed",
	InvalidOperation:     "invalid operation",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) Error() string {
	return k.String()
}

// PatchError describes a single failed operation: the node it failed on,
// the operation itself and a human-readable message.
type PatchError struct {
	Target    interface{}
	Operation Operation
	Kind      ErrorKind
	Message   string
}

func (e PatchError) String() string {
	return e.Message
}

// Error is the error returned when a patch is applied without an error sink.
type Error struct {
	PatchError
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// ErrorGroup aggregates the errors collected by an ErrorLog.
type ErrorGroup struct {
	errors []error
}

func (err ErrorGroup) Error() string {
	res := "multiple errors: "
	for i, e := range err.errors {
		if i != 0 {
			res += ", "
		}
		res += fmt.Sprintf("%q", e)
	}
	return res
}

func (err ErrorGroup) Unwrap() []error {
	return err.errors
}

// ErrorLog is an error sink which keeps every reported PatchError in order.
//
//	var log objpatch.ErrorLog
//	opts := objpatch.DefaultOptions.WithErrorSink(log.Add)
type ErrorLog struct {
	errors []PatchError
}

func (l *ErrorLog) Add(e PatchError) {
	l.errors = append(l.errors, e)
}

func (l *ErrorLog) Errors() []PatchError {
	return l.errors
}

func (l *ErrorLog) Len() int {
	return len(l.errors)
}

// Err folds the log into a single error: nil when empty, the error itself
// when there is exactly one, and an ErrorGroup otherwise.
func (l *ErrorLog) Err() error {
	switch len(l.errors) {
	case 0:
		return nil
	case 1:
		return &Error{l.errors[0]}
	}
	errs := make([]error, len(l.errors))
	for i, e := range l.errors {
		errs[i] = &Error{e}
	}
	return ErrorGroup{errs}
}

// Diagnostic messages.

func msgTargetNotFound(segment string) string {
	return fmt.Sprintf("The target location specified by path segment '%s' was not found.", segment)
}

func msgCannotPerform(op OpKind, path string) string {
	return fmt.Sprintf("The '%s' operation at path '%s' could not be performed.", op, path)
}

func msgIndexOutOfBounds(op OpKind, path string) string {
	return fmt.Sprintf("For operation '%s' on array property at path '%s', the index is out of bounds of the array size.", op, path)
}

func msgInvalidArrayPath(op OpKind, path string) string {
	return fmt.Sprintf("For operation '%s', the provided path is invalid for array property at path '%s'.", op, path)
}

func msgInvalidValue(value interface{}, path string) string {
	return fmt.Sprintf("The value '%v' is invalid for property at path '%s'.", value, path)
}

func msgNotWritable(path string) string {
	return fmt.Sprintf("The property at path '%s' could not be updated.", path)
}

func msgNotReadable(path string) string {
	return fmt.Sprintf("The property at path '%s' could not be read.", path)
}

func msgFixedSize(typeName string) string {
	return fmt.Sprintf("The type '%s' which is an array is not supported for json patch operations as it has a fixed size.", typeName)
}

func msgTestFailed(current interface{}, path string, expected interface{}) string {
	return fmt.Sprintf("The current value '%v' at path '%s' is not equal to the test value '%v'.", current, path, expected)
}
