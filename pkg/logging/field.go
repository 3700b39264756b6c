package logging

import (
	"strings"
	"time"
)

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// DurationField records a duration in milliseconds.
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// ErrorField creates a Field for an error value. If err is nil,
// the value is set to the string "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// SuiteField names the suite kind a log entry refers to.
func SuiteField(kind string) Field {
	return Field{Key: "suite", Value: kind}
}

// CaseField names the test case a log entry refers to.
func CaseField(name string) Field {
	return Field{Key: "case", Value: name}
}

// ModeField records the run strategy ("propagate" or
// "collect").
func ModeField(mode string) Field {
	return Field{Key: "mode", Value: mode}
}

// RunIDField carries the identifier of a plan execution.
func RunIDField(id string) Field {
	return Field{Key: "run_id", Value: id}
}

// FailureField carries the headline of a test failure, the first
// line of its message.
func FailureField(err error) Field {
	if err == nil {
		return Field{Key: "failure", Value: "<nil>"}
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return Field{Key: "failure", Value: line}
}
