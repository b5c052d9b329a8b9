// Package logger provides verbose logging for the brainview CLI.
// Debug, Info and Warn messages are printed to stderr only when verbose
// mode is enabled via the --verbose flag; Error messages always print.
// Scoped loggers prefix each line with a component name so render-loop,
// region-lookup and file-watch output can be told apart.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(always bool, level, scope, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && !always {
		return
	}
	prefix := "[" + level + "] "
	if scope != "" {
		prefix += "[" + scope + "] "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(false, "DEBUG", "", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(false, "INFO", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write(false, "WARN", "", format, args...)
}

// Error prints a message regardless of verbose mode.
func Error(format string, args ...any) {
	write(true, "ERROR", "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Scope is a logger bound to a component name.
type Scope struct {
	name string
}

// Scoped returns a logger that tags every line with name.
func Scoped(name string) *Scope {
	return &Scope{name: name}
}

// Debug prints a scoped debug message if verbose mode is enabled.
func (s *Scope) Debug(format string, args ...any) {
	write(false, "DEBUG", s.name, format, args...)
}

// Info prints a scoped informational message if verbose mode is enabled.
func (s *Scope) Info(format string, args ...any) {
	write(false, "INFO", s.name, format, args...)
}

// Warn prints a scoped warning if verbose mode is enabled.
func (s *Scope) Warn(format string, args ...any) {
	write(false, "WARN", s.name, format, args...)
}

// Error prints a scoped error regardless of verbose mode.
func (s *Scope) Error(format string, args ...any) {
	write(true, "ERROR", s.name, format, args...)
}
