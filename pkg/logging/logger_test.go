package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"log", LogField("key", "value"), "key", "value"},
		{"string", StringField("name", "test"), "name", "test"},
		{"int", IntField("count", 42), "count", 42},
		{"bool", BoolField("enabled", true), "enabled", true},
		{"duration", DurationField("took", 1500*time.Millisecond), "took", int64(1500)},
		{"suite", SuiteField("MathSuite"), "suite", "MathSuite"},
		{"case", CaseField("add_ok"), "case", "add_ok"},
		{"mode", ModeField("collect"), "mode", "collect"},
		{"run id", RunIDField("abc"), "run_id", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.field.Key)
			assert.Equal(t, tt.value, tt.field.Value)
		})
	}
}

func TestErrorField_WithError(t *testing.T) {
	err := assert.AnError
	f := ErrorField(err)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, err.Error(), f.Value)
}

func TestErrorField_Nil(t *testing.T) {
	f := ErrorField(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestMergeFields_DoesNotMutateBase(t *testing.T) {
	base := map[string]any{"a": 1}
	out := mergeFields(base, []Field{IntField("a", 2), IntField("b", 3)})

	assert.Equal(t, map[string]any{"a": 1}, base)
	assert.Equal(t, map[string]any{"a": 2, "b": 3}, out)
}

func TestFailureField(t *testing.T) {
	f := FailureField(errors.New("Expected: <true> as bool\nExpression: <ok>"))
	assert.Equal(t, "failure", f.Key)
	assert.Equal(t, "Expected: <true> as bool", f.Value)

	assert.Equal(t, "<nil>", FailureField(nil).Value)
}
