package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{"verbose enabled", true, func(l *ConsoleLogger) { l.Verbose("moving %s", "a.txt") }, "[VERBOSE] moving a.txt\n"},
		{"verbose disabled", false, func(l *ConsoleLogger) { l.Verbose("moving %s", "a.txt") }, ""},
		{"info", false, func(l *ConsoleLogger) { l.Info("collapsed %d file(s)", 3) }, "collapsed 3 file(s)\n"},
		{"error", false, func(l *ConsoleLogger) { l.Error("failed: %v", "boom") }, "[ERROR] failed: boom\n"},
		{"no args keeps percent", false, func(l *ConsoleLogger) { l.Info("template %B%E") }, "template %B%E\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriterLogger(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_WritesToStderr(t *testing.T) {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	NewConsoleLogger(false).Info("hello")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	assert.Equal(t, "hello\n", buf.String())
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 30)
	for i, line := range lines {
		if !strings.Contains(line, "message") && !strings.Contains(line, "verbose") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}

	// Should complete without panic
	wg.Wait()
}

// BenchmarkConsoleLogger_Verbose measures performance of verbose logging
func BenchmarkConsoleLogger_Verbose(b *testing.B) {
	logger := NewWriterLogger(io.Discard, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

// BenchmarkConsoleLogger_VerboseDisabled measures performance when verbose is disabled
func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewConsoleLogger(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

func ExampleConsoleLogger() {
	logger := NewWriterLogger(os.Stdout, true)
	logger.Info("Collapsing example")
	logger.Verbose("Moving test/b.txt -> b.txt")
	logger.Error("Operation failed")
	// Output:
	// Collapsing example
	// [VERBOSE] Moving test/b.txt -> b.txt
	// [ERROR] Operation failed
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Verbose("This too")
	// Output:
}
