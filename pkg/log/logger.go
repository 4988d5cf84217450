package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SetupLogger installs a slog default handler that writes Cloud Logging
// compatible JSON to w and makes it the package-level provider as well.
func SetupLogger(w io.Writer, loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	logger := slog.New(WrapByErrFmtHandler(handler))
	slog.SetDefault(logger)
	SetProvider(&SlogProvider{logger: logger})
}

// ToLogLevel converts a level name to slog.Level. It panics on unknown names;
// configuration is validated before it gets here.
func ToLogLevel(level string) slog.Level {
	l, ok := ParseLevel(level)
	if !ok {
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
	return slog.Level(l)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogProvider adapts a *slog.Logger to LoggerProvider. The level is owned
// by the slog handler, so SetLevel is a no-op.
type SlogProvider struct {
	logger *slog.Logger
}

// NewSlogProvider wraps logger.
func NewSlogProvider(logger *slog.Logger) *SlogProvider {
	return &SlogProvider{logger: logger}
}

func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{l: p.logger}
}

func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{l: p.logger.With(ComponentKey, name)}
}

func (p *SlogProvider) SetLevel(Level) {}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, slogArgs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, slogArgs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, slogArgs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, slogArgs(fields)...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(slogArgs(fields)...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogArgs gives a leading bare error the ErrAttrKey so ErrFmtHandler sees it.
func slogArgs(fields []any) []any {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			return append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	return fields
}
