package ops

import (
	"context"
	"math"
	"testing"

	"github.com/kbukum/pipekit/pipe"
	"github.com/kbukum/pipekit/resolve"
)

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestMinMaxScaler_FitTransform(t *testing.T) {
	p, err := pipe.NewComposer(pipe.WithIDSource(pipe.NewSequence("op"))).
		Compose(MinMaxScaler())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fitted, err := pipe.Fit(context.Background(), p, []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fitted.Data().([]float64); !floatsEqual(got, []float64{0, 0.25, 0.5, 0.75, 1.0}) {
		t.Fatalf("unexpected fit output: %v", got)
	}

	raw, ok := fitted.Get("op-0")
	if !ok {
		t.Fatal("expected fitted state under the slot identity")
	}
	st := raw.(ScalerState)
	if st.Min != 1 || st.Max != 5 {
		t.Fatalf("unexpected fitted state: %+v", st)
	}

	out, err := pipe.TransformWith(context.Background(), p, []float64{0, 3, 6}, fitted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Data().([]float64); !floatsEqual(got, []float64{-0.25, 0.5, 1.25}) {
		t.Fatalf("unexpected transform output: %v", got)
	}
}

func TestMinMaxScaler_UnknownModePassesThrough(t *testing.T) {
	p, err := pipe.Compose(MinMaxScaler())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.Run(context.Background(), pipe.Context{pipe.KeyData: []float64{9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Data().([]float64); !floatsEqual(got, []float64{9}) {
		t.Fatalf("expected pass-through, got %v", got)
	}
}

func TestMinMaxScaler_TransformWithoutFit(t *testing.T) {
	p, err := pipe.Compose(MinMaxScaler())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = pipe.TransformWith(context.Background(), p, []float64{1}, pipe.Context{})
	if err == nil {
		t.Fatal("expected error for transform without fitted state")
	}
}

func TestMinMaxScaler_ConstantData(t *testing.T) {
	p, err := pipe.Compose(MinMaxScaler())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fitted, err := pipe.Fit(context.Background(), p, []float64{4, 4, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fitted.Data().([]float64); !floatsEqual(got, []float64{0, 0, 0}) {
		t.Fatalf("expected zeros for constant data, got %v", got)
	}
}

func TestVocabFilter_FitTransform(t *testing.T) {
	p, err := pipe.Compose(VocabFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fitted, err := pipe.Fit(context.Background(), p, "hello world from go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := pipe.TransformWith(context.Background(), p, "hello from python", fitted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != "hello from" {
		t.Fatalf("expected %q, got %q", "hello from", out.Data())
	}
}

func TestVocabFilter_WrongPayloadType(t *testing.T) {
	p, err := pipe.Compose(VocabFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pipe.Fit(context.Background(), p, 42); err == nil {
		t.Fatal("expected error for non-string payload")
	}
}

func TestMultiplyBy(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"float", 2.0, 6.0},
		{"int", 2, 6.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MultiplyBy(3)(context.Background(), pipe.Context{pipe.KeyData: tt.input})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Data() != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, out.Data())
			}
		})
	}
}

func TestMultiplyBy_Slice(t *testing.T) {
	out, err := MultiplyBy(2)(context.Background(), pipe.Context{pipe.KeyData: []float64{1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Data().([]float64); !floatsEqual(got, []float64{2, 4}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestDefaultRegistry_DeclarativePipeline(t *testing.T) {
	r := resolve.New(DefaultRegistry())
	p, err := r.BuildPipeline(nil, map[string]any{"factor": 10},
		resolve.Ref("str/upper"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.Run(context.Background(), "shout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != "SHOUT" {
		t.Fatalf("expected SHOUT, got %v", out.Data())
	}
}

func TestDefaultRegistry_AliasedCallForm(t *testing.T) {
	r := resolve.New(DefaultRegistry())
	p, err := r.BuildPipeline(nil, nil, []any{resolve.Ref("m/multiply-by"), 4.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.Run(context.Background(), 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != 10.0 {
		t.Fatalf("expected 10.0, got %v", out.Data())
	}
}

func TestDefaultRegistry_FactoryNeedsCallForm(t *testing.T) {
	r := resolve.New(DefaultRegistry())

	// A bare reference to a factory resolves to the factory itself, which
	// the composer rejects; the call form invokes it into an op.
	steps, err := r.Build(nil, resolve.Ref("prep/scale"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := pipe.Compose(steps...); err == nil {
		t.Fatal("expected compose to reject the unapplied factory")
	}

	if _, err := r.BuildPipeline(nil, nil, []any{resolve.Ref("prep/scale")}); err != nil {
		t.Fatalf("unexpected error for call form: %v", err)
	}
}

func TestScalerInDeclaredPipeline_StateRoundTrip(t *testing.T) {
	r := resolve.New(DefaultRegistry())
	p, err := r.BuildPipeline(
		pipe.NewComposer(pipe.WithIDSource(pipe.NewSequence("op"))),
		nil,
		[]any{resolve.Ref("prep/scale")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fitted, err := pipe.Fit(context.Background(), p, []float64{0, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := pipe.TransformWith(context.Background(), p, []float64{5}, fitted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Data().([]float64); !floatsEqual(got, []float64{0.5}) {
		t.Fatalf("expected [0.5], got %v", got)
	}
}
