package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned when [Log] AppName is missing from main.toml.
	ErrAppNameIsEmpty = errors.New("botpanel config: [Log] AppName must be set")

	// ErrServiceNameIsEmpty is returned when [Log] ServiceName is missing from main.toml.
	ErrServiceNameIsEmpty = errors.New("botpanel config: [Log] ServiceName must be set")
)

// ErrorHandler reports events zerolog failed to write.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "botpanel: dropped log event: %v\n", err)
}
