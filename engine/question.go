package engine

import (
	"fmt"
	"log/slog"

	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/types"
)

// askNext picks the next slot to interview and emits its question, or
// transitions to confirmation when nothing is left. Tags whose definition
// disappeared from the template are dropped silently.
func (e *Engine) askNext(state *types.ConversationState, cat *catalog.Catalog, lang string) (*types.Response, error) {
	for {
		var tag string
		switch {
		case state.AskedField != "":
			tag = state.AskedField
		case len(state.RemainingFields) > 0:
			tag = state.RemainingFields[0]
		default:
			return e.completeRecord(state, lang)
		}

		def, ok := cat.Definition(tag)
		if !ok {
			slog.Debug("dropping tag missing from template", "tag", tag)
			e.completeField(state, tag)
			continue
		}

		state.AskedField = tag
		if def.Structured() {
			code := state.AskedSubfield
			if code == "" {
				sd, _ := def.FirstSubfield()
				code = sd.Code
			}
			sd, ok := def.Subfield(code)
			if !ok {
				e.completeField(state, tag)
				continue
			}
			state.AskedSubfield = code
			return questionResponse(state, def, &sd, lang), nil
		}
		state.AskedSubfield = ""
		return questionResponse(state, def, nil, lang), nil
	}
}

func (e *Engine) completeRecord(state *types.ConversationState, lang string) (*types.Response, error) {
	state.AskedField = ""
	state.AskedSubfield = ""
	state.RepeatConfirmation = nil
	state.RepeatingField = false
	state.Step = types.StepConfirmation
	return &types.Response{
		Type:         types.ResponseRecordComplete,
		State:        state,
		FilledFields: state.FilledFields,
		Message: tr(lang,
			"Todos os campos foram preenchidos. Pronto para gerar o registo UNIMARC.",
			"All fields are resolved. Ready to generate the UNIMARC record."),
	}, nil
}

// questionResponse builds the interview question for a field or sub-field
// slot: translated name, tag, mandatory/optional annotation and tips.
func questionResponse(state *types.ConversationState, def catalog.Definition, sd *types.SubFieldDef, lang string) *types.Response {
	name := catalog.TranslatedName(def, lang)
	slot := def.Tag
	mandatory := def.Mandatory
	tips := append([]string(nil), def.Tips...)
	subCode := ""

	var msg string
	if sd != nil {
		subCode = sd.Code
		slot = def.Tag + "$" + sd.Code
		mandatory = sd.Mandatory
		tips = append(tips, sd.Tips...)
		label := catalog.SubfieldName(*sd)
		msg = tr(lang,
			fmt.Sprintf("Qual o valor para %s, %s (%s)? (%s)", name, label, slot, annotation(mandatory, lang)),
			fmt.Sprintf("What is the value for %s, %s (%s)? (%s)", name, label, slot, annotation(mandatory, lang)))
	} else {
		msg = tr(lang,
			fmt.Sprintf("Qual o valor para %s (%s)? (%s)", name, slot, annotation(mandatory, lang)),
			fmt.Sprintf("What is the value for %s (%s)? (%s)", name, slot, annotation(mandatory, lang)))
	}

	if !mandatory {
		tips = append(tips, tr(lang,
			`pode ser deixado em branco (responda "n/a")`,
			`may be left blank (answer "n/a")`))
	}

	return &types.Response{
		Type:      types.ResponseFieldQuestion,
		State:     state,
		Message:   msg,
		Field:     def.Tag,
		Subfield:  subCode,
		Mandatory: mandatory,
		Tips:      tips,
	}
}

func annotation(mandatory bool, lang string) string {
	if mandatory {
		return tr(lang, "obrigatório", "mandatory")
	}
	return tr(lang, "opcional", "optional")
}

// repeatPromptResponse asks whether the user wants to add another
// occurrence of the slot the confirmation refers to.
func repeatPromptResponse(state *types.ConversationState, def catalog.Definition, subCode, lang string) *types.Response {
	slot := def.Tag
	if subCode != "" {
		slot = def.Tag + "$" + subCode
	}
	return &types.Response{
		Type:     types.ResponseRepeatConfirmation,
		State:    state,
		Field:    def.Tag,
		Subfield: subCode,
		Message: tr(lang,
			fmt.Sprintf("Deseja adicionar outro valor para %s? (sim/não)", slot),
			fmt.Sprintf("Add another value for %s? (sim/não)", slot)),
	}
}

func reviewResponse(state *types.ConversationState, lang string) *types.Response {
	return &types.Response{
		Type:         types.ResponseReviewFields,
		State:        state,
		FilledFields: state.FilledFields,
		Message: tr(lang,
			`Campos preenchidos até agora. Responda "continuar" para retomar.`,
			`Fields filled so far. Answer "continuar" to resume.`),
	}
}
