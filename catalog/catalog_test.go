package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/types"
)

func testTemplate() *types.Template {
	return &types.Template{
		ID:   "tpl-book",
		Name: "Livro",
		ControlFields: []types.ControlField{
			{Tag: "001", Name: "Identificador", Mandatory: true},
			{Tag: "100", Name: "Dados gerais"},
		},
		DataFields: []types.DataField{
			{
				Tag:       "200",
				Name:      "Título",
				Mandatory: true,
				SubFieldDef: []types.SubFieldDef{
					{Code: "a", Name: "Título próprio", Mandatory: true},
					{Code: "f", Name: "Menção de responsabilidade"},
				},
			},
			{Tag: "010", Name: "ISBN"},
		},
	}
}

func TestAllTagsCanonicalOrder(t *testing.T) {
	cat := catalog.New(testTemplate())
	want := []string{"001", "010", "100", "200"}
	if diff := cmp.Diff(want, cat.AllTags()); diff != "" {
		t.Errorf("tag order mismatch (-want +got):\n%s", diff)
	}
}

func TestAllTagsReturnsCopy(t *testing.T) {
	cat := catalog.New(testTemplate())
	tags := cat.AllTags()
	tags[0] = "mutated"
	if got := cat.AllTags()[0]; got != "001" {
		t.Errorf("AllTags aliases internal state: %s", got)
	}
}

func TestTagOrderingRules(t *testing.T) {
	tpl := &types.Template{
		ControlFields: []types.ControlField{
			{Tag: "zzz"}, {Tag: "9"}, {Tag: "LDR"},
		},
		DataFields: []types.DataField{
			{Tag: "010"}, {Tag: "10"},
		},
	}
	cat := catalog.New(tpl)
	// numeric ascending first, equal numbers by string, non-numeric after
	want := []string{"9", "010", "10", "LDR", "zzz"}
	if diff := cmp.Diff(want, cat.AllTags()); diff != "" {
		t.Errorf("tag order mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateTagKeepsFirst(t *testing.T) {
	tpl := &types.Template{
		ControlFields: []types.ControlField{{Tag: "001", Name: "primeiro"}},
		DataFields:    []types.DataField{{Tag: "001", Name: "segundo"}},
	}
	cat := catalog.New(tpl)
	if got := cat.AllTags(); len(got) != 1 {
		t.Fatalf("expected one tag, got %v", got)
	}
	def, ok := cat.Definition("001")
	if !ok || def.Name != "primeiro" || !def.Control {
		t.Errorf("expected first definition kept, got %+v", def)
	}
}

func TestDefinitionShapes(t *testing.T) {
	cat := catalog.New(testTemplate())

	ctrl, ok := cat.Definition("001")
	if !ok || !ctrl.Control || ctrl.Structured() {
		t.Errorf("001 should be a flat control field: %+v", ctrl)
	}

	flat, ok := cat.Definition("010")
	if !ok || flat.Control || flat.Structured() {
		t.Errorf("010 should be a flat data field: %+v", flat)
	}

	structured, ok := cat.Definition("200")
	if !ok || !structured.Structured() {
		t.Errorf("200 should be structured: %+v", structured)
	}

	if _, ok := cat.Definition("999"); ok {
		t.Error("unknown tag resolved")
	}
}

func TestSubfieldNavigation(t *testing.T) {
	cat := catalog.New(testTemplate())
	def, _ := cat.Definition("200")

	first, ok := def.FirstSubfield()
	if !ok || first.Code != "a" {
		t.Fatalf("first subfield: %+v ok=%v", first, ok)
	}
	next, ok := def.NextSubfield("a")
	if !ok || next.Code != "f" {
		t.Fatalf("next after a: %+v ok=%v", next, ok)
	}
	if _, ok := def.NextSubfield("f"); ok {
		t.Error("expected no subfield after the last one")
	}
	if _, ok := def.NextSubfield("x"); ok {
		t.Error("expected no subfield after an unknown code")
	}
	if sd, ok := def.Subfield("f"); !ok || sd.Name != "Menção de responsabilidade" {
		t.Errorf("Subfield(f): %+v ok=%v", sd, ok)
	}

	ctrl, _ := cat.Definition("001")
	if _, ok := ctrl.FirstSubfield(); ok {
		t.Error("control field should have no subfields")
	}
}

func TestTranslatedName(t *testing.T) {
	cases := []struct {
		def  catalog.Definition
		lang string
		want string
	}{
		{catalog.Definition{Tag: "200", Name: "Custom"}, "pt", "Título e menção de responsabilidade"},
		{catalog.Definition{Tag: "200", Name: "Custom"}, "en", "Title and statement of responsibility"},
		{catalog.Definition{Tag: "200", Name: "Custom"}, "fr", "Custom"},
		{catalog.Definition{Tag: "XXX", Name: "Custom"}, "pt", "Custom"},
		{catalog.Definition{Tag: "XXX"}, "pt", "XXX"},
	}
	for _, tc := range cases {
		if got := catalog.TranslatedName(tc.def, tc.lang); got != tc.want {
			t.Errorf("TranslatedName(%s, %s) = %q, want %q", tc.def.Tag, tc.lang, got, tc.want)
		}
	}
}

func TestSubfieldName(t *testing.T) {
	if got := catalog.SubfieldName(types.SubFieldDef{Code: "a", Name: "Título próprio"}); got != "Título próprio" {
		t.Errorf("named subfield: %q", got)
	}
	if got := catalog.SubfieldName(types.SubFieldDef{Code: "a"}); got != "$a" {
		t.Errorf("anonymous subfield: %q", got)
	}
}
