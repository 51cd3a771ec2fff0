package stripe

import (
	"log"
	"sync"
	"time"
)

// RequestLogger provides debug logging for upstream API calls
type RequestLogger struct {
	enabled bool
	mu      sync.RWMutex
}

// NewRequestLogger creates a new request logger
func NewRequestLogger(enabled bool) *RequestLogger {
	return &RequestLogger{
		enabled: enabled,
	}
}

// IsEnabled returns whether request logging is enabled
func (l *RequestLogger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables request logging
func (l *RequestLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogRequest logs a completed API call with execution time and status code
func (l *RequestLogger) LogRequest(method, url string, duration time.Duration, status, attempts int) {
	if !l.IsEnabled() {
		return
	}

	log.Printf("[HTTP] [%.2fms] [status:%d] [attempts:%d] %s %s",
		float64(duration.Nanoseconds())/1e6,
		status,
		attempts,
		method,
		url)
}

// LogError logs a failed API call with execution time
func (l *RequestLogger) LogError(method, url string, duration time.Duration, err error) {
	if !l.IsEnabled() {
		return
	}

	log.Printf("[HTTP] [%.2fms] [ERROR] %s %s: %v",
		float64(duration.Nanoseconds())/1e6,
		method,
		url,
		err)
}
