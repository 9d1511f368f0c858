package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/ilohealth/hcilo/internal/logger"
)

// ConsoleLogger is a logger.Logger that prints styled lines to a terminal
// writer. Debug lines are only printed when logger.DebugEnabled is true.
type ConsoleLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleLogger creates a ConsoleLogger writing to w.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{w: w}
}

var _ logger.Logger = (*ConsoleLogger)(nil)

func (c *ConsoleLogger) Debug(format string, args ...interface{}) {
	if !logger.DebugEnabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	PrintMuted(c.w, "debug: "+fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) Info(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) Warn(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	PrintWarning(c.w, fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) Error(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	PrintError(c.w, fmt.Sprintf(format, args...))
}
