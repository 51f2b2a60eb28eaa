package patch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/acervolab/catalogagent/patch"
	"github.com/acervolab/catalogagent/types"
)

func TestApplyMergesIntoFilledFields(t *testing.T) {
	current := map[string]types.Value{
		"001": {Text: "12345"},
	}
	ops := []patch.Operation{
		{Op: patch.OpReplace, Path: "/200", Value: types.Value{Subfields: map[string]string{"a": "Os Maias"}}},
		{Op: patch.OpReplace, Path: "/001", Value: types.Value{Text: "67890"}},
	}

	got, err := patch.Apply(current, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := map[string]types.Value{
		"001": {Text: "67890"},
		"200": {Subfields: map[string]string{"a": "Os Maias"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patched document mismatch (-want +got):\n%s", diff)
	}
	if current["001"].Text != "12345" {
		t.Error("input document was mutated")
	}
}

func TestApplyNoOps(t *testing.T) {
	current := map[string]types.Value{"001": {Text: "12345"}}
	got, err := patch.Apply(current, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff(current, got); diff != "" {
		t.Errorf("no-op apply changed the document (-want +got):\n%s", diff)
	}
}

func TestApplyRemove(t *testing.T) {
	current := map[string]types.Value{
		"001": {Text: "12345"},
		"200": {Subfields: map[string]string{"a": "Os Maias"}},
	}
	got, err := patch.Apply(current, []patch.Operation{
		{Op: patch.OpRemove, Path: "/200"},
		{Op: patch.OpRemove, Path: "/999"}, // missing, dropped by reconciliation
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := map[string]types.Value{"001": {Text: "12345"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patched document mismatch (-want +got):\n%s", diff)
	}
}

func TestFixOperations(t *testing.T) {
	doc := []byte(`{"001":{"text":"12345"},"nested":{"a/b":{"x":1}},"list":[1,2]}`)
	ops := []patch.Operation{
		{Op: patch.OpReplace, Path: "/001", Value: "v"},
		{Op: patch.OpReplace, Path: "/200", Value: "v"},
		{Op: patch.OpRemove, Path: "/missing"},
		{Op: patch.OpRemove, Path: "/001"},
		{Op: patch.OpAdd, Path: "/300", Value: "v"},
		{Op: patch.OpReplace, Path: "/nested/a~1b", Value: "v"},
		{Op: patch.OpReplace, Path: "/list/1", Value: "v"},
		{Op: patch.OpReplace, Path: "/list/9", Value: "v"},
	}
	want := []patch.Operation{
		{Op: patch.OpReplace, Path: "/001", Value: "v"},
		{Op: patch.OpAdd, Path: "/200", Value: "v"},
		{Op: patch.OpRemove, Path: "/001"},
		{Op: patch.OpAdd, Path: "/300", Value: "v"},
		{Op: patch.OpReplace, Path: "/nested/a~1b", Value: "v"},
		{Op: patch.OpReplace, Path: "/list/1", Value: "v"},
		{Op: patch.OpAdd, Path: "/list/9", Value: "v"},
	}
	got := patch.FixOperations(doc, ops)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reconciled ops mismatch (-want +got):\n%s", diff)
	}
}
