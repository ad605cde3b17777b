package mediator

import (
	"reflect"
	"strings"
)

// RequestName returns the simple type name of request, without package or
// pointer prefix. For example "*samples.Ping" becomes "Ping".
func RequestName(request any) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	// Generic instantiations carry package paths inside brackets
	if i := strings.Index(fullName, "["); i >= 0 {
		fullName = fullName[:i]
	}

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
