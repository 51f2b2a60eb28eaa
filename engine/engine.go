// Package engine implements the turn-by-turn conversation state machine
// that fills a UNIMARC record against a template: bulk inference first,
// then a field-by-field interview with repeat, edit and review support,
// and finally serialization and storage.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/callbacks"

	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/types"
)

const defaultLanguage = "pt"

// Engine is the deterministic turn function. It holds no conversation
// state between calls; the caller round-trips the full snapshot each turn.
type Engine struct {
	templates TemplateSource
	gen       TextGenerator
	store     RecordStore
}

func New(templates TemplateSource, gen TextGenerator, store RecordStore) *Engine {
	return &Engine{
		templates: templates,
		gen:       gen,
		store:     store,
	}
}

// Turn advances the conversation by exactly one step and returns the next
// outward message. The submitted state is cloned before any mutation, so
// the caller's snapshot is never aliased.
func (e *Engine) Turn(ctx context.Context, req *types.Request) (*types.Response, error) {
	ctx = callbacks.EnsureRunInfo(ctx, "CatalogAgent", "Agent")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"description": req.Description,
		"step":        stepOf(req.State),
	})

	resp, err := e.turn(ctx, req)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, map[string]any{
		"type": string(resp.Type),
		"step": stepOf(resp.State),
	})
	return resp, nil
}

func (e *Engine) turn(ctx context.Context, req *types.Request) (*types.Response, error) {
	state, err := cloneState(req.State)
	if err != nil {
		return errorResponse(req.State, "invalid conversation state", err.Error()), nil
	}

	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = defaultLanguage
	}

	switch state.Step {
	case types.StepTemplateSelection:
		return e.selectTemplate(ctx, req, state, lang)
	case types.StepBulkAutoFill:
		return e.bulkAutoFill(ctx, req, state, lang)
	case types.StepFieldFilling:
		return e.fieldFilling(ctx, req, state, lang)
	case types.StepConfirmation:
		return e.confirm(ctx, req, state, lang)
	case types.StepCompleted:
		return errorResponse(state, tr(lang,
			"a conversa já terminou",
			"the conversation is already completed"), ""), nil
	default:
		return errorResponse(state, tr(lang,
			"passo de conversa desconhecido",
			"unknown conversation step"), string(state.Step)), nil
	}
}

// cloneState deep-copies the caller's snapshot through a serialization
// round trip. A nil snapshot starts a fresh conversation.
func cloneState(s *types.ConversationState) (*types.ConversationState, error) {
	if s == nil {
		return &types.ConversationState{Step: types.StepTemplateSelection}, nil
	}
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	var out types.ConversationState
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	if out.Step == "" {
		out.Step = types.StepTemplateSelection
	}
	return &out, nil
}

func stepOf(s *types.ConversationState) string {
	if s == nil {
		return string(types.StepTemplateSelection)
	}
	return string(s.Step)
}

func errorResponse(state *types.ConversationState, message, details string) *types.Response {
	return &types.Response{
		Type:      types.ResponseError,
		ErrorKind: types.ErrorPrecondition,
		State:     state,
		Message:   message,
		Details:   details,
	}
}

// collaboratorError marks a failure of an injected dependency, so the
// transport layer can report it as unavailable rather than a bad request.
func collaboratorError(state *types.ConversationState, message, details string) *types.Response {
	resp := errorResponse(state, message, details)
	resp.ErrorKind = types.ErrorCollaborator
	return resp
}

// tr picks the message for the requested language; Portuguese is the
// default, anything other than "en" falls back to it.
func tr(lang, pt, en string) string {
	if lang == "en" {
		return en
	}
	return pt
}

func removeTag(tags []string, tag string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// newCatalog resolves the template the state carries; callers must have
// checked that a template is present.
func newCatalog(state *types.ConversationState) *catalog.Catalog {
	return catalog.New(state.Template)
}
