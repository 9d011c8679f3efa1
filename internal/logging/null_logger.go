package logging

import "github.com/vvka-141/pathkit/pkg/pathkit"

// NullLogger discards every message. The engines and services are tested
// with it so test output only shows assertion failures.
type NullLogger struct{}

// Discard is a shared NullLogger.
var Discard pathkit.Logger = NullLogger{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})    {}
func (NullLogger) Error(string, ...interface{})   {}
