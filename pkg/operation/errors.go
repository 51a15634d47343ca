package operation

import (
	"github.com/walteh/copyver/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies why a versioning run failed
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindConfigIncomplete
	KindSourceNotFound
	KindDestinationUnwritable
)

var (
	ErrConfigNotFound        = config.ErrNotFound
	ErrConfigIncomplete      = config.ErrIncomplete
	ErrSourceNotFound        = errors.Base("source not found")
	ErrDestinationUnwritable = errors.Base("destination unwritable")
)

func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "config not found"
	case KindConfigIncomplete:
		return "config incomplete"
	case KindSourceNotFound:
		return "source not found"
	case KindDestinationUnwritable:
		return "destination unwritable"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfigNotFound:
		return ErrConfigNotFound
	case KindConfigIncomplete:
		return ErrConfigIncomplete
	case KindSourceNotFound:
		return ErrSourceNotFound
	case KindDestinationUnwritable:
		return ErrDestinationUnwritable
	default:
		return nil
	}
}

// ❌ Error is the typed failure of a versioning run. errors.Is matches it
// against the Err* sentinels of its kind and against the wrapped cause.
type Error struct {
	Kind Kind
	Path string // offending path, when there is one
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil && errors.Is(e.Err, e.Kind.sentinel()) {
		// the cause already names the kind and path
		return e.Err.Error()
	}

	msg := e.Kind.String()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf reports the kind of err, or KindUnknown when err is not a versioning
// failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrConfigNotFound):
		return KindConfigNotFound
	case errors.Is(err, ErrConfigIncomplete):
		return KindConfigIncomplete
	case errors.Is(err, ErrSourceNotFound):
		return KindSourceNotFound
	case errors.Is(err, ErrDestinationUnwritable):
		return KindDestinationUnwritable
	}
	return KindUnknown
}
