package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	gerrors "github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// ErrFmtHandler decorates records that carry an error attribute with the
// stack trace recorded by cockroachdb/errors and a structured error code.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with an ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var found error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			found = err
		}
		return false
	})

	if found != nil {
		if stacktrace := extractStacktrace(found); stacktrace != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
		}
		if code := ErrorCode(found); code != "" {
			r.AddAttrs(slog.String(ErrorCodeKey, code))
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// ErrorCode maps the structured errors of pkg/errors to the Error* codes.
// It returns "" for anything else.
func ErrorCode(err error) string {
	var (
		notFitted  *gerrors.NotFittedError
		dim        *gerrors.DimensionError
		degenerate *gerrors.DegenerateClassError
		zero       *gerrors.ZeroEvidenceError
		value      *gerrors.ValueError
	)
	switch {
	case err == nil:
		return ""
	case gerrors.As(err, &notFitted):
		return ErrorNotFitted
	case gerrors.As(err, &dim):
		return ErrorDimensionMismatch
	case gerrors.As(err, &degenerate):
		return ErrorDegenerateClass
	case gerrors.As(err, &zero):
		return ErrorZeroEvidence
	case gerrors.Is(err, gerrors.ErrEmptyData):
		return ErrorEmptyData
	case gerrors.As(err, &value):
		return ErrorInvalidInput
	}
	return ""
}
