package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/types"
)

const (
	selectTemplateToolName = "select_template"
	selectTemplateToolDesc = "Choose the cataloging template whose material type best matches the bibliographic description."

	fillRecordToolName = "fill_record"
	fillRecordToolDesc = "Fill UNIMARC fields inferred from the bibliographic description. Keys are tags; values are a string for control fields or an object mapping sub-field codes to strings for structured data fields. Omit fields the description says nothing about."
)

type selectTemplateArgs struct {
	Name string `json:"name" jsonschema:"required,description=Name of the chosen template exactly as listed"`
}

type fillRecordArgs struct {
	Fields map[string]any `json:"fields" jsonschema:"description=Inferred field values keyed by UNIMARC tag"`
}

type selectRequest struct {
	Description string
	Candidates  []string
}

type fillRequest struct {
	Description string
	Template    *types.Template
}

// Generator implements the engine's TextGenerator against an eino chat
// model.
type Generator struct {
	model       model.ToolCallingChatModel
	selectChain *chain[*selectRequest, selectTemplateArgs]
	fillChain   *chain[*fillRequest, fillRecordArgs]
}

func NewGenerator(chatModel model.ToolCallingChatModel) (*Generator, error) {
	selectChain, err := newChain[*selectRequest, selectTemplateArgs](
		chatModel, buildSelectTemplatePrompt, selectTemplateToolName, selectTemplateToolDesc)
	if err != nil {
		return nil, fmt.Errorf("create template selection chain: %w", err)
	}
	fillChain, err := newChain[*fillRequest, fillRecordArgs](
		chatModel, buildFillRecordPrompt, fillRecordToolName, fillRecordToolDesc)
	if err != nil {
		return nil, fmt.Errorf("create bulk fill chain: %w", err)
	}
	return &Generator{
		model:       chatModel,
		selectChain: selectChain,
		fillChain:   fillChain,
	}, nil
}

func (g *Generator) SelectTemplate(ctx context.Context, description string, candidates []string) (string, error) {
	result, err := g.selectChain.Invoke(ctx, &selectRequest{Description: description, Candidates: candidates})
	if err != nil {
		return "", fmt.Errorf("select template: %w", err)
	}
	return strings.TrimSpace(result.Name), nil
}

// BulkInferFields returns the raw inferred payload. A payload the model
// shaped badly degrades to an empty result; only transport failures are
// surfaced as errors.
func (g *Generator) BulkInferFields(ctx context.Context, description string, tpl *types.Template) (map[string]any, error) {
	result, err := g.fillChain.Invoke(ctx, &fillRequest{Description: description, Template: tpl})
	if err != nil {
		if isMalformedPayload(err) {
			slog.Warn("bulk inference returned a malformed payload, treating as empty", "error", err)
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("bulk infer fields: %w", err)
	}
	if result == nil || result.Fields == nil {
		return map[string]any{}, nil
	}
	return result.Fields, nil
}

func isMalformedPayload(err error) bool {
	return errors.Is(err, errNoToolCall) || errors.Is(err, errParseToolCallArgs)
}

func (g *Generator) SerializeRecord(ctx context.Context, tpl *types.Template, fields []record.Field) (string, error) {
	messages, err := buildSerializePrompt(tpl, fields)
	if err != nil {
		return "", fmt.Errorf("build serialization prompt: %w", err)
	}
	response, err := g.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("serialize record: %w", err)
	}
	text := strings.TrimSpace(response.Content)
	if text == "" {
		return "", fmt.Errorf("serialization produced no output")
	}
	return text, nil
}
