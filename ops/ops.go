// Package ops provides reference operations for pipekit pipelines.
//
// The stateful operations here (MinMaxScaler, VocabFilter) follow the
// fit/transform convention: in fit mode they derive state from the payload
// and stash it in the context under their slot identity; in transform mode
// they read that state back and apply it; under any other mode they pass
// the context through unchanged. The engine does not enforce this — it
// only guarantees the stable identities that make it work.
package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/pipekit/pipe"
)

// ScalerState is the fitted state a MinMaxScaler stores under its identity.
type ScalerState struct {
	Min float64
	Max float64
}

// MinMaxScaler returns an operation that rescales a []float64 payload to
// [0, 1] over the range observed in fit mode. Transform mode applies the
// fitted range to new data; values outside it land outside [0, 1].
func MinMaxScaler() pipe.Op {
	return func(_ context.Context, c pipe.Context) (pipe.Context, error) {
		switch c.Mode() {
		case pipe.ModeFit:
			xs, err := toFloats(c.Data())
			if err != nil {
				return nil, err
			}
			if len(xs) == 0 {
				return nil, fmt.Errorf("min-max scaler: empty payload")
			}
			st := ScalerState{Min: xs[0], Max: xs[0]}
			for _, x := range xs[1:] {
				if x < st.Min {
					st.Min = x
				}
				if x > st.Max {
					st.Max = x
				}
			}
			return c.
				With(pipe.KeyData, scale(xs, st)).
				With(c.ID(), st), nil
		case pipe.ModeTransform:
			raw, ok := c.Get(c.ID())
			if !ok {
				return nil, fmt.Errorf("min-max scaler: no fitted state under %q", c.ID())
			}
			st, ok := raw.(ScalerState)
			if !ok {
				return nil, fmt.Errorf("min-max scaler: state under %q is %T", c.ID(), raw)
			}
			xs, err := toFloats(c.Data())
			if err != nil {
				return nil, err
			}
			return c.With(pipe.KeyData, scale(xs, st)), nil
		default:
			return c, nil
		}
	}
}

func scale(xs []float64, st ScalerState) []float64 {
	span := st.Max - st.Min
	if span == 0 {
		span = 1
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - st.Min) / span
	}
	return out
}

// VocabFilter returns an operation that, fit on a whitespace-tokenized
// string, learns its vocabulary; in transform mode it drops tokens outside
// the fitted vocabulary, preserving the original order.
func VocabFilter() pipe.Op {
	return func(_ context.Context, c pipe.Context) (pipe.Context, error) {
		switch c.Mode() {
		case pipe.ModeFit:
			s, ok := c.Data().(string)
			if !ok {
				return nil, fmt.Errorf("vocab filter: expected string payload, got %T", c.Data())
			}
			vocab := make(map[string]struct{})
			for _, w := range strings.Fields(s) {
				vocab[w] = struct{}{}
			}
			return c.With(c.ID(), vocab), nil
		case pipe.ModeTransform:
			raw, ok := c.Get(c.ID())
			if !ok {
				return nil, fmt.Errorf("vocab filter: no fitted vocabulary under %q", c.ID())
			}
			vocab, ok := raw.(map[string]struct{})
			if !ok {
				return nil, fmt.Errorf("vocab filter: state under %q is %T", c.ID(), raw)
			}
			s, ok := c.Data().(string)
			if !ok {
				return nil, fmt.Errorf("vocab filter: expected string payload, got %T", c.Data())
			}
			kept := make([]string, 0)
			for _, w := range strings.Fields(s) {
				if _, in := vocab[w]; in {
					kept = append(kept, w)
				}
			}
			return c.With(pipe.KeyData, strings.Join(kept, " ")), nil
		default:
			return c, nil
		}
	}
}

// MultiplyBy is a factory producing an operation that multiplies a numeric
// payload (float64 or []float64) by k.
func MultiplyBy(k float64) pipe.Op {
	return func(_ context.Context, c pipe.Context) (pipe.Context, error) {
		switch v := c.Data().(type) {
		case float64:
			return c.With(pipe.KeyData, v*k), nil
		case int:
			return c.With(pipe.KeyData, float64(v)*k), nil
		case []float64:
			out := make([]float64, len(v))
			for i, x := range v {
				out[i] = x * k
			}
			return c.With(pipe.KeyData, out), nil
		default:
			return nil, fmt.Errorf("multiply-by: unsupported payload %T", v)
		}
	}
}

// Upper uppercases a string payload. Use with pipe.Lift.
func Upper(s string) string { return strings.ToUpper(s) }

// TokenCount counts whitespace-separated tokens. Use with pipe.Lift.
func TokenCount(s string) int { return len(strings.Fields(s)) }

func toFloats(v any) ([]float64, error) {
	switch xs := v.(type) {
	case []float64:
		return xs, nil
	case []int:
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = float64(x)
		}
		return out, nil
	case []any:
		out := make([]float64, len(xs))
		for i, x := range xs {
			switch n := x.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			default:
				return nil, fmt.Errorf("expected numeric payload, got %T at %d", x, i)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected numeric slice payload, got %T", v)
	}
}
