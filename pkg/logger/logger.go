package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the API and the CLI.
// Lines look like: 2026-01-02T15:04:05Z [INFO] message key=value ...

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var (
	mu     sync.RWMutex
	out    = log.New(os.Stdout, "", 0)
	level  = LevelInfo
	exitFn = os.Exit
)

// ParseLevel maps a case-insensitive name to a Level; unknown names are Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// Init sets the global level from its name (LOG_LEVEL).
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// SetOutput redirects log lines; tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[level]
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func emit(l Level, msg string) {
	mu.RLock()
	w := out
	mu.RUnlock()
	w.Printf("%s [%s] %s", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(levelNames[l]), msg)
}

func logf(l Level, format string, v ...any) {
	if !enabled(l) {
		return
	}
	emit(l, fmt.Sprintf(format, v...))
}

func logw(l Level, msg string, kv ...any) {
	if !enabled(l) {
		return
	}
	emit(l, msg+formatFields(kv))
}

// formatFields renders alternating key/value pairs. A trailing key without a
// value is rendered as key=<missing>.
func formatFields(kv []any) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		fmt.Fprint(&b, kv[i])
		b.WriteByte('=')
		if i+1 >= len(kv) {
			b.WriteString("<missing>")
			break
		}
		val := fmt.Sprint(kv[i+1])
		if strings.ContainsAny(val, " \t\n\"") {
			val = fmt.Sprintf("%q", val)
		}
		b.WriteString(val)
	}
	return b.String()
}

func Debugf(format string, v ...any) { logf(LevelDebug, format, v...) }
func Infof(format string, v ...any)  { logf(LevelInfo, format, v...) }
func Warnf(format string, v ...any)  { logf(LevelWarn, format, v...) }
func Errorf(format string, v ...any) { logf(LevelError, format, v...) }

// Fatalf logs regardless of level and exits the process.
func Fatalf(format string, v ...any) {
	emit(LevelFatal, fmt.Sprintf(format, v...))
	exitFn(1)
}

func Debugw(msg string, kv ...any) { logw(LevelDebug, msg, kv...) }
func Infow(msg string, kv ...any)  { logw(LevelInfo, msg, kv...) }
func Warnw(msg string, kv ...any)  { logw(LevelWarn, msg, kv...) }
func Errorw(msg string, kv ...any) { logw(LevelError, msg, kv...) }
