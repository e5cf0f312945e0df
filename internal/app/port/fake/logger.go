package fake

import "sync"

// Logger records messages by level.
type Logger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func (l *Logger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.messages == nil {
		l.messages = make(map[string][]string)
	}
	l.messages[level] = append(l.messages[level], msg)
}

func (l *Logger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *Logger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *Logger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *Logger) Error(msg string, _ ...any) { l.record("error", msg) }

// Messages returns what was logged at level.
func (l *Logger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages[level]...)
}
