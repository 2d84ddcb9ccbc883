package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Logger struct {
	file   *os.File
	logger *log.Logger
}

// NewLogger writes leveled lines to w only.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

// NewRunLogger writes to stdout and, when logsDir is set, mirrors every
// line to logs/<site>/generate_<site>_<timestamp>.log.
func NewRunLogger(siteName, logsDir string) (*Logger, error) {
	if logsDir == "" {
		return NewLogger(os.Stdout), nil
	}

	// Sanitize site name for file system
	sanitizedSite := strings.ReplaceAll(strings.ToLower(siteName), " ", "_")
	if sanitizedSite == "" {
		sanitizedSite = "site"
	}

	siteDir := filepath.Join(logsDir, sanitizedSite)
	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(siteDir, fmt.Sprintf("generate_%s_%s.log", sanitizedSite, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiWrite := io.MultiWriter(os.Stdout, file)

	return &Logger{
		file:   file,
		logger: log.New(multiWrite, "", log.Ldate|log.Ltime),
	}, nil
}

func (l *Logger) LogInfo(format string, v ...interface{}) {
	l.log("INFO", format, v...)
}

func (l *Logger) LogError(format string, v ...interface{}) {
	l.log("ERROR", format, v...)
}

func (l *Logger) LogDebug(format string, v ...interface{}) {
	l.log("DEBUG", format, v...)
}

func (l *Logger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] %s", level, message)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
