package assertion

import (
	"fmt"
	"reflect"
)

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func boolMessage(expected bool, expr string, loc Location) string {
	return fmt.Sprintf(
		"Expected: <%t> as bool\nExpression: <%s>\n%s",
		expected, expr, loc,
	)
}

// comparisonMessage renders both operands with their static
// types. label is "Expected" or "Expected not".
func comparisonMessage(
	label string,
	expected any, expectedType string,
	actual any, actualType string,
	expr string,
	loc Location,
) string {
	return fmt.Sprintf(
		"%s: <%v> as %s\nActual: <%v> as %s\nExpression: <%s>\n%s",
		label, expected, expectedType,
		actual, actualType,
		expr, loc,
	)
}

func throwsMessage(
	expectedType, actual, expr string,
	loc Location,
) string {
	return fmt.Sprintf(
		"Expected error: <%s>\nActual: <%s>\nExpression: <%s>\n%s",
		expectedType, actual, expr, loc,
	)
}
