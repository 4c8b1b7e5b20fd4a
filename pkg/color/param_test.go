package color

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_UniformWithValueIsLiteral(t *testing.T) {
	param := Resolve("uniform", map[string]any{"value": "gray"})

	if param.Kind() != KindLiteral {
		t.Fatalf("expected literal, got %v", param.Kind())
	}
	if param.Value() != "gray" {
		t.Fatalf("expected gray, got %q", param.Value())
	}

	data, err := json.Marshal(param)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"gray"` {
		t.Fatalf("expected bare literal on the wire, got %s", data)
	}
}

func TestResolve_ParamsBecomeComposite(t *testing.T) {
	param := Resolve("bfactor", map[string]any{"domain": []any{0, 100}})

	if param.Kind() != KindComposite {
		t.Fatalf("expected composite, got %v", param.Kind())
	}
	if param.Scheme() != "bfactor" {
		t.Fatalf("expected bfactor scheme, got %q", param.Scheme())
	}

	data, err := json.Marshal(param)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"scheme": "bfactor",
		"domain": []any{float64(0), float64(100)},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("wire shape mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_NoParamsIsNamed(t *testing.T) {
	param := Resolve("chainid", nil)

	if param.Kind() != KindNamed {
		t.Fatalf("expected named, got %v", param.Kind())
	}
	data, err := json.Marshal(param)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"chainid"` {
		t.Fatalf("expected bare scheme id, got %s", data)
	}
}

func TestResolve_UniformWithoutValue(t *testing.T) {
	// A uniform scheme with other params falls through to the composite
	// branch, and with no params to the named branch.
	composite := Resolve("uniform", map[string]any{"opacity": 0.5})
	if composite.Kind() != KindComposite {
		t.Fatalf("expected composite, got %v", composite.Kind())
	}

	named := Resolve("uniform", nil)
	if named.Kind() != KindNamed || named.Scheme() != "uniform" {
		t.Fatalf("expected named uniform, got %#v", named)
	}
}

func TestGray(t *testing.T) {
	param := Gray()
	if param.Kind() != KindLiteral || param.Value() != "gray" {
		t.Fatalf("unexpected gray fallback: %#v", param)
	}
}

func TestParam_ParamsIsACopy(t *testing.T) {
	source := map[string]any{"domain": "x"}
	param := Composite("bfactor", source)

	got := param.Params()
	got["domain"] = "mutated"

	if fresh := param.Params(); fresh["domain"] != "x" {
		t.Fatalf("internal params mutated: %#v", fresh)
	}
}

func TestParam_String(t *testing.T) {
	if got := Named("chainid").String(); got != "chainid" {
		t.Fatalf("named string = %q", got)
	}
	if got := Literal("#aabbcc").String(); got != "#aabbcc" {
		t.Fatalf("literal string = %q", got)
	}
}
