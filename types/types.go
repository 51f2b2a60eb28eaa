// Package types defines the UNIMARC template schema, the conversation
// state round-tripped by the caller on every turn, and the turn
// request/response envelope.
package types

// Step identifies the stage of a cataloging conversation.
type Step string

const (
	StepTemplateSelection Step = "template-selection"
	StepBulkAutoFill      Step = "bulk-auto-fill"
	StepFieldFilling      Step = "field-filling"
	StepConfirmation      Step = "confirmation"
	StepCompleted         Step = "completed"
)

// SubFieldDef describes one sub-field of a data field.
type SubFieldDef struct {
	Code       string   `json:"code"`
	Name       string   `json:"name,omitempty"`
	Mandatory  bool     `json:"mandatory"`
	Repeatable bool     `json:"repeatable"`
	Tips       []string `json:"tips,omitempty"`
}

// ControlField is a flat UNIMARC field holding a single string value.
type ControlField struct {
	Tag        string   `json:"tag"`
	Name       string   `json:"name,omitempty"`
	Mandatory  bool     `json:"mandatory"`
	Repeatable bool     `json:"repeatable"`
	Tips       []string `json:"tips,omitempty"`
}

// DataField is a UNIMARC field composed of sub-fields. A data field with
// no sub-field definitions behaves like a control field for value storage.
type DataField struct {
	Tag         string        `json:"tag"`
	Name        string        `json:"name,omitempty"`
	Ind1        string        `json:"ind1,omitempty"`
	Ind2        string        `json:"ind2,omitempty"`
	Mandatory   bool          `json:"mandatory"`
	Repeatable  bool          `json:"repeatable"`
	SubFieldDef []SubFieldDef `json:"subFieldDef,omitempty"`
	Tips        []string      `json:"tips,omitempty"`
}

// Template is the immutable schema describing which UNIMARC tags apply to
// a material type. Tags are unique across the union of control and data
// fields.
type Template struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	ControlFields []ControlField `json:"controlFields"`
	DataFields    []DataField    `json:"dataFields"`
}

// Value is the resolved content of a single field: Text for control fields
// and flat data fields, Subfields for structured data fields. Exactly one
// side is populated. Repeated occurrences are appended to the stored string
// with "; ".
type Value struct {
	Text      string            `json:"text,omitempty"`
	Subfields map[string]string `json:"subfields,omitempty"`
}

// TextValue builds a flat Value.
func TextValue(s string) Value {
	return Value{Text: s}
}

// IsZero reports whether the value holds no content at all.
func (v Value) IsZero() bool {
	return v.Text == "" && len(v.Subfields) == 0
}

// RepeatPrompt records the slot a pending yes/no repeat question refers
// to. An empty Subfield means the whole field is being offered for repeat.
type RepeatPrompt struct {
	Tag      string `json:"tag"`
	Subfield string `json:"subfield,omitempty"`
}

// ConversationState is the full snapshot of cataloging progress. The
// caller owns it between turns and must echo it back unchanged; the engine
// never mutates the submitted snapshot in place.
type ConversationState struct {
	Step               Step             `json:"step"`
	Template           *Template        `json:"template,omitempty"`
	FilledFields       map[string]Value `json:"filledFields,omitempty"`
	RemainingFields    []string         `json:"remainingFields,omitempty"`
	AskedField         string           `json:"askedField,omitempty"`
	AskedSubfield      string           `json:"askedSubfield,omitempty"`
	RepeatingField     bool             `json:"repeatingField,omitempty"`
	RepeatConfirmation *RepeatPrompt    `json:"repeatConfirmation,omitempty"`
	AutoFilledCount    int              `json:"autoFilledCount,omitempty"`
}

// User answers with special meaning during the interview.
const (
	// AnswerYes accepts a repeat confirmation.
	AnswerYes = "sim"
	// CommandReview freezes the interview and shows everything filled so far.
	CommandReview = "rever"
	// CommandContinue resumes the interview after a review.
	CommandContinue = "continuar"
)

// Request is the inbound turn envelope.
type Request struct {
	Description  string             `json:"description"`
	Language     string             `json:"language,omitempty"`
	State        *ConversationState `json:"conversationState,omitempty"`
	UserResponse string             `json:"userResponse,omitempty"`
	FieldToEdit  string             `json:"fieldToEdit,omitempty"`
}

// ResponseType discriminates the outbound turn payload.
type ResponseType string

const (
	ResponseTemplateSelected   ResponseType = "template-selected"
	ResponseBulkAutoFilled     ResponseType = "bulk-auto-filled"
	ResponseFieldQuestion      ResponseType = "field-question"
	ResponseRepeatConfirmation ResponseType = "repeat-confirmation"
	ResponseReviewFields       ResponseType = "review-fields-display"
	ResponseRecordComplete     ResponseType = "record-complete"
	ResponseRecordSaved        ResponseType = "record-saved"
	ResponseTemplateNotFound   ResponseType = "template-not-found"
	ResponseError              ResponseType = "error"
)

// ErrorKind classifies an error response for the transport layer. It is
// not part of the wire envelope.
type ErrorKind string

const (
	// ErrorPrecondition marks a turn rejected before any collaborator ran.
	ErrorPrecondition ErrorKind = "precondition"
	// ErrorCollaborator marks a failed template source, model or store call.
	ErrorCollaborator ErrorKind = "collaborator"
)

// Response is the outbound turn envelope, tagged on Type. State carries the
// new snapshot the caller must send back on the next turn.
type Response struct {
	Type            ResponseType       `json:"type"`
	ErrorKind       ErrorKind          `json:"-"`
	State           *ConversationState `json:"conversationState,omitempty"`
	Message         string             `json:"message,omitempty"`
	TemplateID      string             `json:"templateId,omitempty"`
	TemplateName    string             `json:"templateName,omitempty"`
	Field           string             `json:"field,omitempty"`
	Subfield        string             `json:"subfield,omitempty"`
	Mandatory       bool               `json:"mandatory,omitempty"`
	Tips            []string           `json:"tips,omitempty"`
	FilledFields    map[string]Value   `json:"filledFields,omitempty"`
	AutoFilledCount int                `json:"autoFilledCount,omitempty"`
	RecordID        string             `json:"recordId,omitempty"`
	Unimarc         string             `json:"unimarc,omitempty"`
	Details         string             `json:"details,omitempty"`
}
