package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"

	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/types"
)

func buildSelectTemplatePrompt(ctx context.Context, req *selectRequest) ([]*schema.Message, error) {
	systemPrompt := fmt.Sprintf("You are a library cataloging assistant. Read the bibliographic description and call %s with the name of the template that matches the material type (book, periodical, map, recording...). Pick exactly one name from the candidate list, copied verbatim.", selectTemplateToolName)

	sections := []string{
		fmt.Sprintf("# Bibliographic description:\n%s", req.Description),
		fmt.Sprintf("# Candidate templates:\n%s", formatCandidates(req.Candidates)),
	}

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}, nil
}

func formatCandidates(names []string) string {
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildFillRecordPrompt(ctx context.Context, req *fillRequest) ([]*schema.Message, error) {
	tplJSON, err := sonic.Marshal(req.Template)
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	systemPrompt := fmt.Sprintf("You are a library cataloging assistant. Extract UNIMARC field values from the bibliographic description and call %s. Rules: only use information explicitly present in the description; for fields with sub-field definitions return an object keyed by sub-field code; never invent identifiers or dates; omit anything the description does not state.", fillRecordToolName)

	sections := []string{
		fmt.Sprintf("# Bibliographic description:\n%s", req.Description),
		fmt.Sprintf("# Template schema JSON:\n```json\n%s\n```", string(tplJSON)),
	}

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}, nil
}

// serializationRules is the fixed rule set for the UNIMARC text form.
const serializationRules = `Render the record as line-oriented UNIMARC text. Rules:
- one field per line, in the given order;
- control fields: the tag, one space, then the value ("TAG value");
- data fields: the tag, two spaces, the two indicators (use "#" for an undefined indicator), then each sub-field as "$" + code + value, in the given order;
- a mandatory field whose sub-fields are all empty still emits a bare "$a";
- output only the UNIMARC lines, no commentary and no code fences.`

func buildSerializePrompt(tpl *types.Template, fields []record.Field) ([]*schema.Message, error) {
	fieldsJSON, err := sonic.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	sections := []string{
		fmt.Sprintf("# Template: %s", tpl.Name),
		fmt.Sprintf("# Resolved fields JSON:\n```json\n%s\n```", string(fieldsJSON)),
	}

	return []*schema.Message{
		schema.SystemMessage(serializationRules),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}, nil
}
