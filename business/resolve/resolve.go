package resolve

import (
	"context"
	"errors"
	"fmt"
)

var ErrUnresolved = errors.New("no source could resolve the code")

// Source yields a display name for a code. ok is false when the source has no answer for it.
type Source interface {
	Lookup(ctx context.Context, code string) (string, bool, error)
}

type SourceFunc func(ctx context.Context, code string) (string, bool, error)

func (f SourceFunc) Lookup(ctx context.Context, code string) (string, bool, error) {
	return f(ctx, code)
}

type Dictionary map[string]string

func (d Dictionary) Lookup(_ context.Context, code string) (string, bool, error) {
	v, ok := d[code]
	return v, ok && v != "", nil
}

// Literal always resolves to itself.
type Literal string

func (l Literal) Lookup(context.Context, string) (string, bool, error) {
	return string(l), true, nil
}

// Identity resolves every code to the code itself.
var Identity Source = SourceFunc(func(_ context.Context, code string) (string, bool, error) {
	return code, true, nil
})

// Name asks each source in order and returns the first answer.
// Failing sources are skipped; their errors are returned alongside the name.
// Context errors abort the resolution.
func Name(ctx context.Context, code string, sources ...Source) (string, error) {
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name, ok, err := src.Lookup(ctx, code)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", err
			}

			errs = append(errs, fmt.Errorf("lookup %q: %w", code, err))
			continue
		}

		if ok {
			return name, errors.Join(errs...)
		}
	}

	return "", errors.Join(append(errs, ErrUnresolved)...)
}

// LogoUrl returns the square logo image of an airline.
func LogoUrl(carrierCode string) string {
	return "https://pics.avs.io/200/200/" + carrierCode + ".png"
}
