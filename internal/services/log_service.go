package services

import (
	"encoding/json"
	"strings"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"gorm.io/gorm"
)

// LogService handles logging operations
type LogService struct {
	db       *gorm.DB
	logLevel models.LogLevel
}

// NewLogService creates a new LogService instance with the default level
func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db, logLevel: models.LogLevelInfo}
}

// NewLogServiceWithLevel creates a new LogService instance with the specified level
func NewLogServiceWithLevel(db *gorm.DB, level string) *LogService {
	return &LogService{db: db, logLevel: parseLogLevel(level)}
}

// parseLogLevel converts a string to LogLevel
func parseLogLevel(level string) models.LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return models.LogLevelDebug
	case "INFO":
		return models.LogLevelInfo
	case "WARN", "WARNING":
		return models.LogLevelWarn
	case "ERROR":
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

// shouldLog checks if a log entry should be recorded based on log level
func (s *LogService) shouldLog(level models.LogLevel) bool {
	levelPriority := map[models.LogLevel]int{
		models.LogLevelDebug: 0,
		models.LogLevelInfo:  1,
		models.LogLevelWarn:  2,
		models.LogLevelError: 3,
	}
	return levelPriority[level] >= levelPriority[s.logLevel]
}

// LogEntry represents a log entry to be created
type LogEntry struct {
	Level   models.LogLevel
	Module  models.LogModule
	Action  string
	Message string
	Details interface{} // serialized to JSON
}

// Log creates a new log entry
func (s *LogService) Log(entry LogEntry) error {
	if s.db == nil || !s.shouldLog(entry.Level) {
		return nil
	}

	var detailsJSON string
	if entry.Details != nil {
		bytes, err := json.Marshal(entry.Details)
		if err != nil {
			detailsJSON = "{}"
		} else {
			detailsJSON = string(bytes)
		}
	}

	return s.db.Create(&models.Log{
		Level:   string(entry.Level),
		Module:  string(entry.Module),
		Action:  entry.Action,
		Message: entry.Message,
		Details: detailsJSON,
	}).Error
}

// Info logs an INFO level entry
func (s *LogService) Info(module models.LogModule, action, message string) {
	s.Log(LogEntry{Level: models.LogLevelInfo, Module: module, Action: action, Message: message})
}

// Warn logs a WARN level entry
func (s *LogService) Warn(module models.LogModule, action, message string) {
	s.Log(LogEntry{Level: models.LogLevelWarn, Module: module, Action: action, Message: message})
}

// Error logs an ERROR level entry
func (s *LogService) Error(module models.LogModule, action, message string) {
	s.Log(LogEntry{Level: models.LogLevelError, Module: module, Action: action, Message: message})
}

// Recent returns the most recent log entries, newest first
func (s *LogService) Recent(limit int) ([]models.Log, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []models.Log
	err := s.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
