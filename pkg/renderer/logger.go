package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr, keeping stdout free for image data
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}
