package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	sink   io.Writer = os.Stdout
	logger           = newLogger(os.Stdout, zerolog.InfoLevel)
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "ts"
	zerolog.ErrorFieldName = "err"
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Setup points the process logger at w (stdout, a file, or both) at the given level.
func Setup(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	sink = w
	logger = newLogger(w, lvl)
	mu.Unlock()
}

// SetOutput swaps the sink and returns a func restoring the previous logger.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev, prevSink := logger, sink
	sink = w
	logger = newLogger(w, zerolog.DebugLevel)
	mu.Unlock()
	return func() {
		mu.Lock()
		logger, sink = prev, prevSink
		mu.Unlock()
	}
}

func write(level zerolog.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	ev := l.WithLevel(level).Str("action", action)
	if kind != "" {
		ev = ev.Str("kind", kind)
	}
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.WarnLevel, "security", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, "", c, action, err, fields)
}

// The helpers below log without a request context.
func Event(action string, fields map[string]any) {
	write(zerolog.InfoLevel, "", nil, action, nil, fields)
}
func Warn(action string, err error, fields map[string]any) {
	write(zerolog.WarnLevel, "", nil, action, err, fields)
}
func Fail(action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, "", nil, action, err, fields)
}
func Fatal(action string, err error, fields map[string]any) {
	write(zerolog.FatalLevel, "", nil, action, err, fields)
	os.Exit(1)
}

// Writer is the sink of the process logger, for middleware that writes its
// own lines (the fiber access log).
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return sink
}
