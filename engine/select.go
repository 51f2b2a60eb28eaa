package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/patch"
	"github.com/acervolab/catalogagent/types"
	"github.com/acervolab/catalogagent/validate"
)

// selectTemplate resolves the template for the description. Failing to
// obtain any template is fatal for the turn: nothing else can proceed.
func (e *Engine) selectTemplate(ctx context.Context, req *types.Request, state *types.ConversationState, lang string) (*types.Response, error) {
	templates, err := e.templates.GetTemplates(ctx)
	if err != nil {
		return collaboratorError(state, tr(lang,
			"não foi possível obter os modelos de catalogação",
			"failed to load cataloging templates"), err.Error()), nil
	}
	if len(templates) == 0 {
		return collaboratorError(state, tr(lang,
			"não há modelos de catalogação disponíveis",
			"no cataloging templates available"), ""), nil
	}

	candidates := make([]string, len(templates))
	for i, tpl := range templates {
		candidates[i] = tpl.Name
	}

	name, err := e.gen.SelectTemplate(ctx, req.Description, candidates)
	if err != nil {
		return collaboratorError(state, tr(lang,
			"falha ao selecionar o modelo",
			"template selection failed"), err.Error()), nil
	}

	var chosen *types.Template
	for i := range templates {
		if strings.EqualFold(strings.TrimSpace(name), templates[i].Name) {
			chosen = &templates[i]
			break
		}
	}
	if chosen == nil {
		slog.Warn("selected template name matched no candidate", "name", name)
		return &types.Response{
			Type:  types.ResponseTemplateNotFound,
			State: state,
			Message: tr(lang,
				fmt.Sprintf("nenhum modelo corresponde a %q", name),
				fmt.Sprintf("no template matches %q", name)),
		}, nil
	}

	state.Template = chosen
	state.Step = types.StepBulkAutoFill
	state.FilledFields = map[string]types.Value{}
	state.RemainingFields = nil
	state.AutoFilledCount = 0

	return &types.Response{
		Type:         types.ResponseTemplateSelected,
		State:        state,
		TemplateID:   chosen.ID,
		TemplateName: chosen.Name,
		Message: tr(lang,
			fmt.Sprintf("Modelo selecionado: %s", chosen.Name),
			fmt.Sprintf("Selected template: %s", chosen.Name)),
	}, nil
}

// bulkAutoFill asks the collaborator to resolve as many fields as possible
// before the interview. Collaborator failures only skip the optimization.
func (e *Engine) bulkAutoFill(ctx context.Context, req *types.Request, state *types.ConversationState, lang string) (*types.Response, error) {
	if state.Template == nil {
		return errorResponse(state, tr(lang,
			"nenhum modelo selecionado",
			"no template selected"), ""), nil
	}
	cat := newCatalog(state)

	payload, err := e.gen.BulkInferFields(ctx, req.Description, state.Template)
	if err != nil {
		slog.Warn("bulk inference failed, falling back to full interview", "error", err)
		payload = nil
	}

	if state.FilledFields == nil {
		state.FilledFields = map[string]types.Value{}
	}

	var ops []patch.Operation
	survivors := make(map[string]bool)
	for tag, raw := range payload {
		def, ok := cat.Definition(tag)
		if !ok {
			slog.Debug("discarding inferred value for unknown tag", "tag", tag)
			continue
		}
		val, ok := coerceValue(def, raw)
		if !ok {
			continue
		}
		ops = append(ops, patch.Operation{Op: patch.OpReplace, Path: "/" + tag, Value: val})
		survivors[tag] = true
	}

	if len(ops) > 0 {
		filled, err := patch.Apply(state.FilledFields, ops)
		if err != nil {
			slog.Warn("applying inferred values failed, falling back to full interview", "error", err)
			survivors = make(map[string]bool)
		} else {
			state.FilledFields = filled
		}
	}

	var remaining []string
	for _, tag := range cat.AllTags() {
		if !survivors[tag] {
			remaining = append(remaining, tag)
		}
	}
	state.RemainingFields = remaining
	state.AutoFilledCount = len(survivors)
	state.Step = types.StepFieldFilling

	if state.AutoFilledCount > 0 {
		return &types.Response{
			Type:            types.ResponseBulkAutoFilled,
			State:           state,
			FilledFields:    state.FilledFields,
			AutoFilledCount: state.AutoFilledCount,
			Message: tr(lang,
				fmt.Sprintf("%d campos preenchidos automaticamente", state.AutoFilledCount),
				fmt.Sprintf("%d fields filled automatically", state.AutoFilledCount)),
		}, nil
	}

	// Nothing inferred: go straight to the first question.
	return e.askNext(state, cat, lang)
}

// coerceValue shapes a raw inferred value for a field definition, keeping
// only usable content. Structured fields keep the sub-entries that are
// independently usable and defined; the field survives iff at least one
// sub-entry does.
func coerceValue(def catalog.Definition, raw any) (types.Value, bool) {
	if def.Structured() {
		m, ok := raw.(map[string]any)
		if !ok {
			return types.Value{}, false
		}
		subs := make(map[string]string)
		for code, sv := range m {
			s, ok := sv.(string)
			if !ok {
				continue
			}
			if _, defined := def.Subfield(code); !defined {
				continue
			}
			if !validate.UsableString(s) {
				continue
			}
			subs[code] = strings.TrimSpace(s)
		}
		if len(subs) == 0 {
			return types.Value{}, false
		}
		return types.Value{Subfields: subs}, true
	}

	s, ok := raw.(string)
	if !ok || !validate.UsableString(s) {
		return types.Value{}, false
	}
	return types.TextValue(strings.TrimSpace(s)), true
}
