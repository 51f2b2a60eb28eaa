package engine_test

import (
	"context"
	"testing"

	"github.com/acervolab/catalogagent/engine"
	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/types"
)

type fakeTemplates struct {
	templates []types.Template
	err       error
}

func (f *fakeTemplates) GetTemplates(ctx context.Context) ([]types.Template, error) {
	return f.templates, f.err
}

type fakeGen struct {
	name      string
	selectErr error
	bulk      map[string]any
	bulkErr   error
	unimarc   string
	serErr    error
}

func (f *fakeGen) SelectTemplate(ctx context.Context, description string, candidates []string) (string, error) {
	return f.name, f.selectErr
}

func (f *fakeGen) BulkInferFields(ctx context.Context, description string, tpl *types.Template) (map[string]any, error) {
	return f.bulk, f.bulkErr
}

func (f *fakeGen) SerializeRecord(ctx context.Context, tpl *types.Template, fields []record.Field) (string, error) {
	if f.serErr != nil {
		return "", f.serErr
	}
	return f.unimarc, nil
}

type fakeStore struct {
	saved []*record.Record
	id    string
	err   error
}

func (f *fakeStore) SaveRecord(ctx context.Context, rec *record.Record) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rec)
	return f.id, nil
}

// bookTemplate is the fixture used across interview tests: one mandatory
// control field and one data field with a mandatory and an optional
// sub-field.
func bookTemplate(repeatableTitle bool) types.Template {
	return types.Template{
		ID:   "tpl-book",
		Name: "Livro",
		ControlFields: []types.ControlField{
			{Tag: "001", Name: "Identificador", Mandatory: true},
		},
		DataFields: []types.DataField{
			{
				Tag:       "200",
				Name:      "Título",
				Mandatory: true,
				SubFieldDef: []types.SubFieldDef{
					{Code: "a", Name: "Título próprio", Mandatory: true, Repeatable: repeatableTitle},
					{Code: "f", Name: "Menção de responsabilidade", Mandatory: false},
				},
			},
		},
	}
}

func newTestEngine(tpl types.Template, gen *fakeGen, st *fakeStore) *engine.Engine {
	return engine.New(&fakeTemplates{templates: []types.Template{tpl}}, gen, st)
}

func turn(t *testing.T, e *engine.Engine, req *types.Request) *types.Response {
	t.Helper()
	resp, err := e.Turn(context.Background(), req)
	if err != nil {
		t.Fatalf("turn failed: %v", err)
	}
	if resp == nil {
		t.Fatal("turn returned nil response")
	}
	return resp
}

func answer(state *types.ConversationState, text string) *types.Request {
	return &types.Request{State: state, UserResponse: text}
}

// startInterview runs template selection and returns the state positioned
// at bulk-auto-fill.
func startInterview(t *testing.T, e *engine.Engine) *types.ConversationState {
	t.Helper()
	resp := turn(t, e, &types.Request{Description: "Livro 'Os Maias' de Eça de Queirós, 1888"})
	if resp.Type != types.ResponseTemplateSelected {
		t.Fatalf("expected template-selected, got %s (%s)", resp.Type, resp.Message)
	}
	if resp.State.Step != types.StepBulkAutoFill {
		t.Fatalf("expected step bulk-auto-fill, got %s", resp.State.Step)
	}
	return resp.State
}
