package engine

import (
	"context"

	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/types"
)

// TemplateSource lists the templates a record can be cataloged against. An
// empty result is a hard failure for template selection.
type TemplateSource interface {
	GetTemplates(ctx context.Context) ([]types.Template, error)
}

// TextGenerator is the text-generation collaborator. Its raw output is
// never trusted: names are matched against known templates and inferred
// values go through the validator before storage.
type TextGenerator interface {
	// SelectTemplate picks the template name that best matches the
	// bibliographic description, out of candidates.
	SelectTemplate(ctx context.Context, description string, candidates []string) (string, error)
	// BulkInferFields attempts to resolve many fields at once from the
	// description. Values are raw: a string per flat field or a
	// map[code]string-shaped map per structured field.
	BulkInferFields(ctx context.Context, description string, tpl *types.Template) (map[string]any, error)
	// SerializeRecord renders the resolved fields as line-oriented
	// UNIMARC text.
	SerializeRecord(ctx context.Context, tpl *types.Template, fields []record.Field) (string, error)
}

// RecordStore persists finished records.
type RecordStore interface {
	SaveRecord(ctx context.Context, rec *record.Record) (string, error)
}
