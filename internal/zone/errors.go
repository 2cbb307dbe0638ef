package zone

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoZone is returned when a context carries no zone.
var ErrNoZone = errors.New("no zone in context")

// MisuseError reports a zone operation used outside of a zone.
type MisuseError struct {
	Op string
}

func (e *MisuseError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s must be used within a zone", e.Op)
	}
	return "must be used within a zone"
}

func (e *MisuseError) Unwrap() error { return ErrNoZone }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying z.
func NewContext(ctx context.Context, z *Zone) context.Context {
	return context.WithValue(ctx, ctxKey{}, z)
}

// FromContext returns the zone stored in ctx.
func FromContext(ctx context.Context) (*Zone, error) {
	z, ok := ctx.Value(ctxKey{}).(*Zone)
	if !ok || z == nil {
		return nil, ErrNoZone
	}
	return z, nil
}

// MustFromContext is like FromContext but panics with a *MisuseError when
// ctx has no zone. op names the caller in the message.
func MustFromContext(ctx context.Context, op string) *Zone {
	z, err := FromContext(ctx)
	if err != nil {
		panic(&MisuseError{Op: op})
	}
	return z
}
