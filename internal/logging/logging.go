// Package logging builds the process logger and scrubs secrets before they
// reach it.
package logging

import (
	"regexp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedText replaces sensitive values.
const RedactedText = "[REDACTED]"

var (
	// password=xxx, pwd=xxx, pass=xxx up to the next delimiter
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// user:pass@host
	userInfoPattern = regexp.MustCompile(`://([^:/@\s]+):[^@\s]+@`)

	jwtPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]*`)
)

// New returns a JSON production logger, or a console development logger
// when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// SanitizeDSN removes the password from a database connection string.
// Use this before logging any DSN.
func SanitizeDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(dsn, "${1}="+RedactedText)
	return userInfoPattern.ReplaceAllString(sanitized, "://${1}:"+RedactedText+"@")
}

// SanitizeError scrubs credentials and bearer tokens from an error message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	sanitized := SanitizeDSN(err.Error())
	return jwtPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
}
