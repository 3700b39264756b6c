package assertion

import (
	"fmt"
	"runtime"
	"strings"
)

// Location identifies the call site of an assertion.
type Location struct {
	File     string
	Line     int
	Function string
}

// String renders the location the way failure messages embed
// it.
func (l Location) String() string {
	return fmt.Sprintf(
		"File: %s\nLine: %d\nFunc: %s",
		l.File, l.Line, l.Function,
	)
}

// Caller returns the location skip frames above the function
// calling Caller. Caller(0) is the caller's own location.
func Caller(skip int) Location {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return Location{File: "<unknown>", Function: "<unknown>"}
	}

	// CallersFrames resolves inlined frames, which FuncForPC
	// would attribute to the inlined callee.
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	loc := Location{
		File:     frame.File,
		Line:     frame.Line,
		Function: shortFuncName(frame.Function),
	}
	if loc.Function == "" {
		loc.Function = "<unknown>"
	}
	return loc
}

// shortFuncName strips the import path and the compiler suffix
// added to method values, leaving e.g. "pkg.(*T).method".
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
