package deliver

import (
	"log"
	"os"
)

type Logger interface {
	Printf(format string, args ...interface{})
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...interface{}) {
	defaultLogger.Printf(format, args...)
}

var defaultLogger = log.New(os.Stdout, "reponotify/deliver ", log.LstdFlags|log.Lmicroseconds)
