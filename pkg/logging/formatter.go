package logging

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SourceFormatter is a custom formatter to control the caller output.
// It wraps a standard formatter (like TextFormatter or JSONFormatter).
type SourceFormatter struct {
	// Underlying is the formatter that we delegate to.
	Underlying logrus.Formatter
	// AddSpace adds an extra newline for readability, typically for text format.
	AddSpace bool
}

// Format renders a single log entry.
func (f *SourceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		// keep only the base file name and the line number
		fileName := filepath.Base(entry.Caller.File)
		entry.Data["x_file_source"] = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	formatted, err := f.Underlying.Format(entry)
	if err != nil {
		return nil, err
	}

	if f.AddSpace {
		return append(formatted, '\n'), nil
	}

	return formatted, nil
}
