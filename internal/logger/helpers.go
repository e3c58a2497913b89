package logger

import (
	"errors"
	"time"

	apperrors "github.com/gorun/parallel/internal/errors"
)

// LogJobStart logs a job being dispatched to a worker slot.
func (l *Logger) LogJobStart(jobID int, command string) {
	l.Info("job started",
		Field{Key: "job_id", Value: jobID},
		Field{Key: "command", Value: command},
	)
}

// LogJobComplete logs a job's completion, including exit status and runtime.
func (l *Logger) LogJobComplete(jobID, exitCode int, duration time.Duration) {
	l.Info("job complete",
		Field{Key: "job_id", Value: jobID},
		Field{Key: "exit_code", Value: exitCode},
		Field{Key: "duration_ms", Value: duration.Milliseconds()},
	)
}

// LogJobSkipped logs a job skipped because the memory threshold was exceeded.
func (l *Logger) LogJobSkipped(jobID int, reason string) {
	l.Warn("job skipped",
		Field{Key: "job_id", Value: jobID},
		Field{Key: "reason", Value: reason},
	)
}

// LogError logs an error with additional context information
func (l *Logger) LogError(err error, context map[string]interface{}) {
	fields := []Field{
		{Key: "error", Value: err.Error()},
	}

	// Add context fields
	for key, value := range context {
		fields = append(fields, Field{Key: key, Value: value})
	}

	l.Error("Error occurred", fields...)
}

// LogAppError logs an AppError with automatic context extraction
func (l *Logger) LogAppError(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fields := []Field{
			{Key: "error_type", Value: appErr.Type.String()},
			{Key: "message", Value: appErr.Message},
		}

		// Add all context fields from the error
		for key, value := range appErr.Context {
			fields = append(fields, Field{Key: key, Value: value})
		}

		// Add the cause if present
		if appErr.Cause != nil {
			fields = append(fields, Field{Key: "cause", Value: appErr.Cause.Error()})
		}

		l.Error("Application error", fields...)
	} else {
		// Fallback for non-AppError types
		l.Error("Error occurred", Field{Key: "error", Value: err.Error()})
	}
}

// LogAppStart logs application startup with version and commit information
func (l *Logger) LogAppStart(version, commit string) {
	l.Info("Application started",
		Field{Key: "version", Value: version},
		Field{Key: "commit", Value: commit},
	)
}

// LogAppShutdown logs application shutdown with reason
func (l *Logger) LogAppShutdown(reason string) {
	l.Info("Application shutting down",
		Field{Key: "reason", Value: reason},
	)
}

// LogJobStart logs a job dispatch using the global logger
func LogJobStart(jobID int, command string) {
	GetGlobalLogger().LogJobStart(jobID, command)
}

// LogJobComplete logs a job completion using the global logger
func LogJobComplete(jobID, exitCode int, duration time.Duration) {
	GetGlobalLogger().LogJobComplete(jobID, exitCode, duration)
}

// LogJobSkipped logs a skipped job using the global logger
func LogJobSkipped(jobID int, reason string) {
	GetGlobalLogger().LogJobSkipped(jobID, reason)
}

// LogErrorGlobal logs an error with context using the global logger
func LogErrorGlobal(err error, context map[string]interface{}) {
	GetGlobalLogger().LogError(err, context)
}

// LogAppError logs an AppError with automatic context extraction using the global logger
func LogAppError(err error) {
	GetGlobalLogger().LogAppError(err)
}

// LogAppStart logs application startup using the global logger
func LogAppStart(version, commit string) {
	GetGlobalLogger().LogAppStart(version, commit)
}

// LogAppShutdown logs application shutdown using the global logger
func LogAppShutdown(reason string) {
	GetGlobalLogger().LogAppShutdown(reason)
}
