package engine

import (
	"context"
	"strings"

	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/types"
)

// confirm serializes the finished record to UNIMARC text and persists it.
// Serialization or storage failures leave the state at confirmation so the
// caller can safely retry the same turn.
func (e *Engine) confirm(ctx context.Context, req *types.Request, state *types.ConversationState, lang string) (*types.Response, error) {
	if state.Template == nil {
		return errorResponse(state, tr(lang,
			"nenhum modelo selecionado",
			"no template selected"), ""), nil
	}
	cat := newCatalog(state)

	// the record can still be amended before it is saved
	if strings.TrimSpace(req.FieldToEdit) != "" {
		state.Step = types.StepFieldFilling
		return e.editField(req, state, cat, lang)
	}

	fields := record.BuildFields(cat, state.FilledFields, lang)

	text, err := e.gen.SerializeRecord(ctx, state.Template, fields)
	if err != nil {
		return collaboratorError(state, tr(lang,
			"falha ao serializar o registo UNIMARC",
			"failed to serialize the UNIMARC record"), err.Error()), nil
	}

	rec := &record.Record{
		TemplateID:   state.Template.ID,
		TemplateName: state.Template.Name,
		FilledFields: state.FilledFields,
		Unimarc:      text,
		Fields:       fields,
	}
	id, err := e.store.SaveRecord(ctx, rec)
	if err != nil {
		return collaboratorError(state, tr(lang,
			"falha ao guardar o registo",
			"failed to save the record"), err.Error()), nil
	}

	state.Step = types.StepCompleted
	return &types.Response{
		Type:     types.ResponseRecordSaved,
		State:    state,
		RecordID: id,
		Unimarc:  text,
		Message: tr(lang,
			"Registo guardado com sucesso.",
			"Record saved."),
	}, nil
}
