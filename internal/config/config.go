// Package config handles configuration loading and validation for slicerename.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	InvalidFlag     ConfigErrorType = "INVALID_FLAG"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case InvalidFlag:
		return fmt.Sprintf("invalid flag %s: %s", e.Field, e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Log levels and formats accepted by the logger.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultExtensions are the image extensions recognized when none are configured.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// Configuration holds all settings for one slicerename invocation.
// It is passed explicitly to the renamer; nothing is read from package state.
type Configuration struct {
	Directory  string        // Directory to scan (not recursive)
	DryRun     bool          // Report renames without performing them
	Extensions []string      // Lowercase extensions with leading dot
	Verbose    bool          // Also report silently skipped files
	Watch      bool          // Keep running and re-scan when files appear
	Debounce   time.Duration // Quiet period before a watch-triggered pass
	LogLevel   string
	LogFormat  string
	LogFile    string // Optional rotating log file; empty logs to stderr only
}

// DefaultConfiguration returns a Configuration with the documented defaults.
func DefaultConfiguration() *Configuration {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)
	return &Configuration{
		Directory:  ".",
		DryRun:     false,
		Extensions: exts,
		Debounce:   2 * time.Second,
		LogLevel:   LogLevelWarn,
		LogFormat:  LogFormatText,
	}
}

// Validate checks that the configuration is usable.
// It does not check that Directory exists; that is reported by the scan itself.
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return &ConfigError{Type: ValidationError, Field: "dir", Message: "directory cannot be empty"}
	}

	if len(c.Extensions) == 0 {
		return &ConfigError{Type: ValidationError, Field: "ext", Message: "at least one extension is required"}
	}
	for i, ext := range c.Extensions {
		if !isValidExtension(ext) {
			return &ConfigError{
				Type:    ValidationError,
				Field:   fmt.Sprintf("ext[%d]", i),
				Message: fmt.Sprintf("invalid extension %q", ext),
			}
		}
	}

	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return &ConfigError{Type: ValidationError, Field: "log-level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return &ConfigError{Type: ValidationError, Field: "log-format", Message: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}

	if c.Watch && c.Debounce <= 0 {
		return &ConfigError{Type: ValidationError, Field: "debounce", Message: "must be positive in watch mode"}
	}

	return nil
}

// HasExtension reports whether ext (any case, with or without leading dot) is recognized.
func (c *Configuration) HasExtension(ext string) bool {
	ext = normalizeExtension(ext)
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseExtensions splits a comma separated list such as "png, .JPG,webp" into
// normalized, de-duplicated extensions. Order of first occurrence is kept.
func ParseExtensions(list string) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ext := normalizeExtension(part)
		if seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}

// ExpandPath expands a leading ~ and cleans the path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// isValidExtension accepts ".x" style extensions without separators or extra dots.
func isValidExtension(ext string) bool {
	if len(ext) < 2 || ext[0] != '.' {
		return false
	}
	if ext != strings.ToLower(ext) {
		return false
	}
	return !strings.ContainsAny(ext[1:], `./\ `)
}
