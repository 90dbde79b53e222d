package resolve

import "testing"

func TestRef_Qualifier(t *testing.T) {
	tests := []struct {
		ref       Ref
		qualifier string
		name      string
	}{
		{"scale", "", "scale"},
		{"prep/scale", "prep", "scale"},
		{"ctx/threshold", "ctx", "threshold"},
	}
	for _, tt := range tests {
		q, n := tt.ref.Qualifier()
		if q != tt.qualifier || n != tt.name {
			t.Fatalf("%q: expected (%q, %q), got (%q, %q)", tt.ref, tt.qualifier, tt.name, q, n)
		}
	}
}

func TestRegistry_LookupPlain(t *testing.T) {
	reg := NewRegistry()
	reg.Register("scale", 1)
	v, ok := reg.Lookup("scale")
	if !ok || v != 1 {
		t.Fatalf("expected 1, got %v (ok=%v)", v, ok)
	}
}

func TestRegistry_LookupQualified(t *testing.T) {
	reg := NewRegistry()
	reg.Register("prep/scale", 2)
	v, ok := reg.Lookup("prep/scale")
	if !ok || v != 2 {
		t.Fatalf("expected 2, got %v (ok=%v)", v, ok)
	}
}

func TestRegistry_AliasSubstitution(t *testing.T) {
	reg := NewRegistry()
	reg.Register("preprocessing/scale", 3)
	reg.Alias("prep", "preprocessing")
	v, ok := reg.Lookup("prep/scale")
	if !ok || v != 3 {
		t.Fatalf("expected alias-substituted lookup, got %v (ok=%v)", v, ok)
	}
}

func TestRegistry_Miss(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Lookup("nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestRegistry_HasNamespace(t *testing.T) {
	reg := NewRegistry()
	reg.Register("math/multiply", 1)
	reg.Alias("m", "math")
	if !reg.HasNamespace("math") {
		t.Fatal("expected math namespace known")
	}
	if !reg.HasNamespace("m") {
		t.Fatal("expected aliased namespace known")
	}
	if reg.HasNamespace("str") {
		t.Fatal("expected str namespace unknown")
	}
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b/y", 1)
	reg.Register("a/x", 2)
	names := reg.List()
	if len(names) != 2 || names[0] != "a/x" || names[1] != "b/y" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}
