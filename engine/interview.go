package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/types"
	"github.com/acervolab/catalogagent/validate"
)

// repeatSeparator joins repeated occurrences of the same slot.
const repeatSeparator = "; "

// fieldFilling runs one turn of the interview loop: resolve sentinels,
// settle a pending repeat confirmation, ingest the answer for the cursored
// slot, then ask the next question.
func (e *Engine) fieldFilling(ctx context.Context, req *types.Request, state *types.ConversationState, lang string) (*types.Response, error) {
	if state.Template == nil {
		return errorResponse(state, tr(lang,
			"nenhum modelo selecionado",
			"no template selected"), ""), nil
	}
	cat := newCatalog(state)

	if strings.TrimSpace(req.FieldToEdit) != "" {
		return e.editField(req, state, cat, lang)
	}

	answer := strings.TrimSpace(req.UserResponse)

	switch {
	case strings.EqualFold(answer, types.CommandReview):
		return reviewResponse(state, lang), nil
	case strings.EqualFold(answer, types.CommandContinue):
		return e.askNext(state, cat, lang)
	}

	if state.RepeatConfirmation != nil {
		if answer == "" {
			// still waiting for the yes/no answer
			rc := *state.RepeatConfirmation
			if def, ok := cat.Definition(rc.Tag); ok {
				return repeatPromptResponse(state, def, rc.Subfield, lang), nil
			}
		}
		return e.resolveRepeat(state, cat, answer, lang)
	}

	if state.AskedField != "" && answer != "" {
		if resp := e.ingestAnswer(state, cat, answer, lang); resp != nil {
			return resp, nil
		}
	}

	return e.askNext(state, cat, lang)
}

// resolveRepeat settles a pending repeat confirmation. "sim" returns the
// cursor to the slot the confirmation was raised for; anything else
// advances exactly as if no repeat had been offered.
func (e *Engine) resolveRepeat(state *types.ConversationState, cat *catalog.Catalog, answer, lang string) (*types.Response, error) {
	rc := *state.RepeatConfirmation
	state.RepeatConfirmation = nil

	if strings.EqualFold(answer, types.AnswerYes) {
		state.RepeatingField = true
		state.AskedField = rc.Tag
		state.AskedSubfield = rc.Subfield
		if rc.Subfield == "" {
			// a field-level repeat of a structured field restarts the
			// sub-field interview
			if def, ok := cat.Definition(rc.Tag); ok && def.Structured() {
				if sd, ok := def.FirstSubfield(); ok {
					state.AskedSubfield = sd.Code
				}
			}
		}
		return e.askNext(state, cat, lang)
	}

	state.RepeatingField = false
	if rc.Subfield != "" {
		def, ok := cat.Definition(rc.Tag)
		if !ok {
			e.completeField(state, rc.Tag)
			return e.askNext(state, cat, lang)
		}
		if resp := e.advanceSubfield(state, def, rc.Subfield, lang); resp != nil {
			return resp, nil
		}
		return e.askNext(state, cat, lang)
	}
	e.completeField(state, rc.Tag)
	return e.askNext(state, cat, lang)
}

// ingestAnswer stores or discards the answer for the cursored slot. It
// returns a response when a repeat confirmation interrupts the flow, nil
// when the interview should continue with the next question.
func (e *Engine) ingestAnswer(state *types.ConversationState, cat *catalog.Catalog, answer, lang string) *types.Response {
	tag := state.AskedField
	def, ok := cat.Definition(tag)
	if !ok {
		e.completeField(state, tag)
		return nil
	}
	state.RepeatingField = false

	if def.Structured() {
		code := state.AskedSubfield
		if code == "" {
			if sd, ok := def.FirstSubfield(); ok {
				code = sd.Code
			}
		}
		sd, ok := def.Subfield(code)
		if !ok {
			e.completeField(state, tag)
			return nil
		}
		if validate.UsableString(answer) {
			storeSubfield(state, tag, code, answer)
			if sd.Repeatable {
				state.RepeatConfirmation = &types.RepeatPrompt{Tag: tag, Subfield: code}
				return repeatPromptResponse(state, def, code, lang)
			}
		}
		// a refusal stores nothing; occurrences already confirmed in a
		// repeat cycle are kept
		return e.advanceSubfield(state, def, code, lang)
	}

	if validate.UsableString(answer) {
		storeText(state, tag, answer)
		if def.Repeatable {
			state.RepeatConfirmation = &types.RepeatPrompt{Tag: tag}
			return repeatPromptResponse(state, def, "", lang)
		}
	}
	e.completeField(state, tag)
	return nil
}

// advanceSubfield moves the cursor past code: to the next sub-field, or
// through field completion (with the field-level repeat check). Returns a
// response only when a repeat confirmation is raised.
func (e *Engine) advanceSubfield(state *types.ConversationState, def catalog.Definition, code, lang string) *types.Response {
	if next, ok := def.NextSubfield(code); ok {
		state.AskedField = def.Tag
		state.AskedSubfield = next.Code
		return nil
	}

	val, exists := state.FilledFields[def.Tag]
	stored := exists && len(val.Subfields) > 0
	if exists && !stored {
		// interview left zero usable sub-entries: prune the field
		delete(state.FilledFields, def.Tag)
	}
	if stored && def.Repeatable {
		state.AskedField = def.Tag
		state.AskedSubfield = ""
		state.RepeatConfirmation = &types.RepeatPrompt{Tag: def.Tag}
		return repeatPromptResponse(state, def, "", lang)
	}
	e.completeField(state, def.Tag)
	return nil
}

// editField re-opens a tag: its stored values are cleared, the tag moves
// to the front of the remaining queue and the next question asks for it.
func (e *Engine) editField(req *types.Request, state *types.ConversationState, cat *catalog.Catalog, lang string) (*types.Response, error) {
	tag := strings.TrimSpace(req.FieldToEdit)
	if _, ok := cat.Definition(tag); !ok {
		return errorResponse(state, tr(lang,
			fmt.Sprintf("campo desconhecido: %s", tag),
			fmt.Sprintf("unknown field: %s", tag)), ""), nil
	}
	delete(state.FilledFields, tag)
	state.RemainingFields = append([]string{tag}, removeTag(state.RemainingFields, tag)...)
	state.AskedField = ""
	state.AskedSubfield = ""
	state.RepeatConfirmation = nil
	state.RepeatingField = false
	return e.askNext(state, cat, lang)
}

func (e *Engine) completeField(state *types.ConversationState, tag string) {
	state.RemainingFields = removeTag(state.RemainingFields, tag)
	state.AskedField = ""
	state.AskedSubfield = ""
}

// storeSubfield records a sub-field answer, appending when the slot
// already holds a value (repeat occurrences).
func storeSubfield(state *types.ConversationState, tag, code, text string) {
	if state.FilledFields == nil {
		state.FilledFields = map[string]types.Value{}
	}
	val := state.FilledFields[tag]
	if val.Subfields == nil {
		val.Subfields = map[string]string{}
	}
	if prev := val.Subfields[code]; prev != "" {
		val.Subfields[code] = prev + repeatSeparator + text
	} else {
		val.Subfields[code] = text
	}
	state.FilledFields[tag] = val
}

// storeText records a flat answer, appending on repeat occurrences.
func storeText(state *types.ConversationState, tag, text string) {
	if state.FilledFields == nil {
		state.FilledFields = map[string]types.Value{}
	}
	val := state.FilledFields[tag]
	if val.Text != "" {
		val.Text = val.Text + repeatSeparator + text
	} else {
		val.Text = text
	}
	state.FilledFields[tag] = val
}
