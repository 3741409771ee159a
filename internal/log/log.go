// Package log provides asynchronous JSON logging of commands, errors and
// diagnostics to separate files.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"rconsh/internal/model"
)

// Fields are structured attributes attached to a log message.
type Fields map[string]interface{}

// logMessage is a queued log record.
type logMessage struct {
	ctx     context.Context
	level   LogLevel
	message string
	fields  Fields
}

// Logger writes commands, errors and other messages to their own JSON log
// files from a single background goroutine.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	level         LogLevel

	logChan chan logMessage
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
}

// NewLogger creates a Logger writing to the files named in cfg.
func NewLogger(cfg *model.Config) (*Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, err
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, err
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, err
	}

	logger := newLogger(commandFile, errorFile, infoFile, level)
	logger.files = files
	return logger, nil
}

// NewDiscardLogger returns a Logger that drops every message.
func NewDiscardLogger() *Logger {
	return newLogger(io.Discard, io.Discard, io.Discard, LevelCommand)
}

func newLogger(command, errs, info io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	logger := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(command, opts)),
		errorLogger:   slog.New(slog.NewJSONHandler(errs, opts)),
		infoLogger:    slog.New(slog.NewJSONHandler(info, opts)),
		level:         level,
		logChan:       make(chan logMessage, 100),
	}

	logger.wg.Add(1)
	go logger.processLogs()

	return logger
}

// processLogs writes queued messages until the channel is closed.
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for msg := range l.logChan {
		target := l.infoLogger
		switch msg.level {
		case LevelCommand:
			target = l.commandLogger
		case LevelError:
			target = l.errorLogger
		}
		target.LogAttrs(msg.ctx, msg.level.toSlogLevel(), msg.message, attrs(msg.fields)...)
	}
}

// attrs converts fields to slog attributes in key order.
func attrs(fields Fields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		out = append(out, slog.Any(k, v))
	}
	return out
}

// log queues a message unless it is above the configured level or the
// logger is closed.
func (l *Logger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	if level > l.level {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	l.logChan <- logMessage{ctx: ctx, level: level, message: message, fields: fields}
}

// Command logs a command sent to a server.
func (l *Logger) Command(ctx context.Context, command string, fields Fields) {
	l.log(ctx, LevelCommand, command, fields)
}

// Error logs an error message.
func (l *Logger) Error(ctx context.Context, message string, fields Fields) {
	l.log(ctx, LevelError, message, fields)
}

// Warn logs a warning.
func (l *Logger) Warn(ctx context.Context, message string, fields Fields) {
	l.log(ctx, LevelWarn, message, fields)
}

// Info logs an informational message.
func (l *Logger) Info(ctx context.Context, message string, fields Fields) {
	l.log(ctx, LevelInfo, message, fields)
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, message string, fields Fields) {
	l.log(ctx, LevelDebug, message, fields)
}

// Close flushes queued messages, stops the logging goroutine and closes
// all log files. Messages logged afterwards are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.logChan)
	l.mu.Unlock()

	l.wg.Wait()

	for _, f := range l.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	return nil
}
