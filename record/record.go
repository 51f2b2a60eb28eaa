// Package record assembles a finished record for storage: the normalized
// field list with display names and schema flags sourced from the catalog.
package record

import (
	"github.com/acervolab/catalogagent/catalog"
	"github.com/acervolab/catalogagent/types"
)

// Subfield is one resolved sub-field of a stored record field.
type Subfield struct {
	Code       string `json:"code"`
	Name       string `json:"name,omitempty"`
	Value      string `json:"value"`
	Mandatory  bool   `json:"mandatory"`
	Repeatable bool   `json:"repeatable"`
}

// Field is one resolved field of a stored record.
type Field struct {
	Tag        string     `json:"tag"`
	Name       string     `json:"name"`
	Value      string     `json:"value,omitempty"`
	Subfields  []Subfield `json:"subfields,omitempty"`
	Ind1       string     `json:"ind1,omitempty"`
	Ind2       string     `json:"ind2,omitempty"`
	Mandatory  bool       `json:"mandatory"`
	Repeatable bool       `json:"repeatable"`
}

// Record is the persisted result of a completed conversation.
type Record struct {
	TemplateID   string                 `json:"templateId"`
	TemplateName string                 `json:"templateName,omitempty"`
	FilledFields map[string]types.Value `json:"filledFields"`
	Unimarc      string                 `json:"unimarc"`
	Fields       []Field                `json:"fields"`
}

// BuildFields converts the filled-fields map into the normalized field
// list, in canonical tag order. Tags without a stored value are skipped;
// sub-fields are listed in definition order, keeping only stored codes.
func BuildFields(cat *catalog.Catalog, filled map[string]types.Value, lang string) []Field {
	var out []Field
	for _, tag := range cat.AllTags() {
		val, ok := filled[tag]
		if !ok || val.IsZero() {
			continue
		}
		def, ok := cat.Definition(tag)
		if !ok {
			continue
		}
		f := Field{
			Tag:        tag,
			Name:       catalog.TranslatedName(def, lang),
			Ind1:       def.Ind1,
			Ind2:       def.Ind2,
			Mandatory:  def.Mandatory,
			Repeatable: def.Repeatable,
		}
		if def.Structured() {
			for _, sd := range def.Subfields {
				text, stored := val.Subfields[sd.Code]
				if !stored {
					continue
				}
				f.Subfields = append(f.Subfields, Subfield{
					Code:       sd.Code,
					Name:       sd.Name,
					Value:      text,
					Mandatory:  sd.Mandatory,
					Repeatable: sd.Repeatable,
				})
			}
		} else {
			f.Value = val.Text
		}
		out = append(out, f)
	}
	return out
}
