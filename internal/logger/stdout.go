package logger

import (
	"fmt"
	"os"
)

type StdoutLogger struct{}

func (l *StdoutLogger) Logf(format string, args ...interface{}) { fmt.Printf(format, args...) }
func (l *StdoutLogger) Log(msg string)                          { fmt.Println(msg) }
func (l *StdoutLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format, args...)
}
