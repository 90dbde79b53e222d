package resolve

import (
	"context"
	"testing"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipe"
)

func multiplyBy(k float64) pipe.Op {
	return func(_ context.Context, c pipe.Context) (pipe.Context, error) {
		return c.With(pipe.KeyData, c.Data().(float64)*k), nil
	}
}

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("math/multiply-by", multiplyBy)
	reg.Register("str/upper", pipe.Lift(func(s string) string { return s }))
	reg.Register("math/pi", 3.14)
	reg.Alias("m", "math")
	return reg
}

func TestBuild_BareReference(t *testing.T) {
	r := New(testRegistry())
	steps, err := r.Build(nil, Ref("str/upper"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := steps[0].(pipe.Op); !ok {
		t.Fatalf("expected resolved op, got %T", steps[0])
	}
}

func TestBuild_UnresolvedReferencePassesThrough(t *testing.T) {
	r := New(testRegistry())
	steps, err := r.Build(nil, Ref("str/missing"))
	if err != nil {
		t.Fatalf("soft mode must not fail: %v", err)
	}
	if steps[0] != Ref("str/missing") {
		t.Fatalf("expected original reference back, got %v", steps[0])
	}

	// The deferred failure surfaces at compose time as an uncallable step.
	_, err = pipe.Compose(steps...)
	if code := errors.CodeOf(err); code != errors.ErrCodeUncallableOperation {
		t.Fatalf("expected UNCALLABLE_OPERATION at compose time, got %v", err)
	}
}

func TestBuild_StrictUnresolvedReference(t *testing.T) {
	r := New(testRegistry(), Strict(true))
	_, err := r.Build(nil, Ref("str/missing"))
	if code := errors.CodeOf(err); code != errors.ErrCodeUnresolvedReference {
		t.Fatalf("expected UNRESOLVED_REFERENCE, got %v", err)
	}
}

func TestBuild_InjectionPassesThrough(t *testing.T) {
	r := New(testRegistry())
	inject := map[string]any{"mode": "fit"}
	steps, err := r.Build(nil, inject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, ok := steps[0].(map[string]any); !ok || m["mode"] != "fit" {
		t.Fatalf("expected injection unchanged, got %v", steps[0])
	}
}

func TestBuild_CallForm(t *testing.T) {
	r := New(testRegistry())
	p, err := r.BuildPipeline(nil, nil, []any{Ref("math/multiply-by"), 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.Run(context.Background(), 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != 6.0 {
		t.Fatalf("expected 6.0, got %v", out.Data())
	}
}

func TestBuild_CtxParameterResolution(t *testing.T) {
	r := New(testRegistry())
	cfg := map[string]any{"threshold": 5}
	p, err := r.BuildPipeline(nil, cfg, []any{Ref("math/multiply-by"), Ref("ctx/threshold")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Resolution happened at build time; later context contents are irrelevant.
	out, err := p.Run(context.Background(), 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != 10.0 {
		t.Fatalf("expected 10.0, got %v", out.Data())
	}
}

func TestBuild_CtxParameterMissing(t *testing.T) {
	r := New(testRegistry())
	_, err := r.Build(map[string]any{}, []any{Ref("math/multiply-by"), Ref("ctx/threshold")})
	if code := errors.CodeOf(err); code != errors.ErrCodeBadParameter {
		t.Fatalf("expected BAD_PARAMETER, got %v", err)
	}
}

func TestBuild_ValueReferenceParameter(t *testing.T) {
	r := New(testRegistry())
	steps, err := r.Build(nil, []any{Ref("math/multiply-by"), "math/pi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := steps[0].(pipe.Op); !ok {
		t.Fatalf("expected op, got %T", steps[0])
	}
}

func TestBuild_AliasedParameterReference(t *testing.T) {
	r := New(testRegistry())
	cfg := map[string]any{}
	steps, err := r.Build(cfg, []any{Ref("math/multiply-by"), "m/pi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := steps[0].(pipe.Op); !ok {
		t.Fatalf("expected op, got %T", steps[0])
	}
}

func TestBuild_LiteralStringParameter(t *testing.T) {
	join := func(s string, sep string) pipe.Op {
		return pipe.Lift(func(x string) string { return x + sep + s })
	}
	reg := testRegistry()
	reg.Register("str/join", join)
	r := New(reg)

	// "world" has no qualifier and "no/such" has an unknown namespace:
	// both pass through literally.
	p, err := r.BuildPipeline(nil, nil, []any{Ref("str/join"), "world", "-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := p.Run(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Data() != "hello-world" {
		t.Fatalf("expected hello-world, got %v", out.Data())
	}
}

func TestBuild_NestedParameterWalk(t *testing.T) {
	var captured map[string]any
	factory := func(params map[string]any) pipe.Op {
		captured = params
		return func(_ context.Context, c pipe.Context) (pipe.Context, error) { return c, nil }
	}
	reg := testRegistry()
	reg.Register("test/factory", factory)
	r := New(reg)

	cfg := map[string]any{"k": 42}
	_, err := r.Build(cfg, []any{
		Ref("test/factory"),
		map[string]any{"inner": []any{Ref("ctx/k"), "literal"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner := captured["inner"].([]any)
	if inner[0] != 42 || inner[1] != "literal" {
		t.Fatalf("expected nested resolution, got %v", inner)
	}
}

func TestBuild_CallFormUnresolvedHead(t *testing.T) {
	r := New(testRegistry())
	form := []any{Ref("math/missing"), 1}
	steps, err := r.Build(nil, form)
	if err != nil {
		t.Fatalf("soft mode must not fail: %v", err)
	}
	if _, ok := steps[0].([]any); !ok {
		t.Fatalf("expected original form back, got %T", steps[0])
	}
}

func TestBuild_EmptyCallForm(t *testing.T) {
	r := New(testRegistry())
	_, err := r.Build(nil, []any{})
	if code := errors.CodeOf(err); code != errors.ErrCodeInvalidDeclaration {
		t.Fatalf("expected INVALID_DECLARATION, got %v", err)
	}
}

func TestBuild_ConcreteOpPassesThrough(t *testing.T) {
	r := New(testRegistry())
	op := pipe.Lift(func(s string) string { return s })
	steps, err := r.Build(nil, op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := steps[0].(pipe.Op); !ok {
		t.Fatalf("expected op unchanged, got %T", steps[0])
	}
}
