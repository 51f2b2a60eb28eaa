package catalog

import "github.com/acervolab/catalogagent/types"

// tagNames maps common UNIMARC tags to display names per language.
// Authored template names take precedence only when no translation exists.
var tagNames = map[string]map[string]string{
	"pt": {
		"001": "Identificador do registo",
		"005": "Data da última transação",
		"010": "ISBN",
		"011": "ISSN",
		"100": "Dados gerais de processamento",
		"101": "Língua da publicação",
		"102": "País de publicação",
		"200": "Título e menção de responsabilidade",
		"205": "Menção de edição",
		"210": "Publicação, distribuição",
		"215": "Descrição física",
		"225": "Coleção",
		"300": "Notas gerais",
		"330": "Resumo",
		"600": "Nome de pessoa como assunto",
		"606": "Assunto",
		"675": "CDU",
		"700": "Autor principal",
		"701": "Coautor",
		"702": "Autor secundário",
		"710": "Coletividade autora",
		"801": "Fonte do registo",
		"856": "Localização eletrónica",
	},
	"en": {
		"001": "Record identifier",
		"005": "Version identifier",
		"010": "ISBN",
		"011": "ISSN",
		"100": "General processing data",
		"101": "Language of the resource",
		"102": "Country of publication",
		"200": "Title and statement of responsibility",
		"205": "Edition statement",
		"210": "Publication, distribution",
		"215": "Physical description",
		"225": "Series",
		"300": "General notes",
		"330": "Summary",
		"600": "Personal name used as subject",
		"606": "Topical name used as subject",
		"675": "UDC",
		"700": "Personal name, primary responsibility",
		"701": "Personal name, alternative responsibility",
		"702": "Personal name, secondary responsibility",
		"710": "Corporate body name, primary responsibility",
		"801": "Originating source",
		"856": "Electronic location and access",
	},
}

// TranslatedName resolves the display name of a field, falling back to the
// authored template name and finally to the raw tag.
func TranslatedName(d Definition, lang string) string {
	if names, ok := tagNames[lang]; ok {
		if name, ok := names[d.Tag]; ok {
			return name
		}
	}
	if d.Name != "" {
		return d.Name
	}
	return d.Tag
}

// SubfieldName resolves the display label of a sub-field, falling back to
// the bare code.
func SubfieldName(sd types.SubFieldDef) string {
	if sd.Name != "" {
		return sd.Name
	}
	return "$" + sd.Code
}
