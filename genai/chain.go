// Package genai implements the text-generation collaborator on top of an
// eino chat model: template selection and bulk field inference through
// forced tool calls, UNIMARC serialization through plain generation.
package genai

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// Malformed model output, as opposed to transport failures. Callers branch
// with errors.Is.
var (
	errNoToolCall        = errors.New("no tool call in model response")
	errParseToolCallArgs = errors.New("parse tool call arguments")
)

type promptBuilder[TInput any] func(ctx context.Context, input TInput) ([]*schema.Message, error)

// chain forces the model to answer through a single tool call and decodes
// the call arguments into TOutput.
type chain[TInput, TOutput any] struct {
	prompt   promptBuilder[TInput]
	model    model.ToolCallingChatModel
	toolInfo *schema.ToolInfo
}

func newChain[TInput, TOutput any](
	chatModel model.ToolCallingChatModel,
	prompt promptBuilder[TInput],
	toolName string,
	toolDesc string,
) (*chain[TInput, TOutput], error) {
	toolInfo, err := utils.GoStruct2ToolInfo[TOutput](toolName, toolDesc)
	if err != nil {
		return nil, fmt.Errorf("convert tool info: %w", err)
	}
	return &chain[TInput, TOutput]{
		prompt:   prompt,
		model:    chatModel,
		toolInfo: toolInfo,
	}, nil
}

func (c *chain[TInput, TOutput]) Invoke(ctx context.Context, input TInput) (*TOutput, error) {
	messages, err := c.prompt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	response, err := c.model.Generate(ctx, messages,
		model.WithTools([]*schema.ToolInfo{c.toolInfo}),
		model.WithToolChoice(schema.ToolChoiceForced, c.toolInfo.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	if len(response.ToolCalls) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoToolCall, response.Content)
	}

	var result TOutput
	if err := sonic.UnmarshalString(response.ToolCalls[0].Function.Arguments, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", errParseToolCallArgs, err)
	}

	return &result, nil
}
