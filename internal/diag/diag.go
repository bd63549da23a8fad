// Package diag records non-fatal generation warnings.
package diag

import (
	"fmt"
	"log/slog"
	"strings"
)

// Warn logs msg with its key/value pairs at Warn level and appends the
// same text to dst as "msg k=v ...".
func Warn(dst *[]string, msg string, args ...any) {
	slog.Warn(msg, args...)
	*dst = append(*dst, Format(msg, args...))
}

// Format renders msg and its key/value pairs on one line. A trailing key
// without a value is dropped.
func Format(msg string, args ...any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
