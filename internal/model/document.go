package model

// DocumentStatus is the publication state of a building document.
type DocumentStatus string

const (
	DocumentDraft  DocumentStatus = "draft"
	DocumentActive DocumentStatus = "active"
)

// DocumentTransitions lists the statuses each document status may move to.
var DocumentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentDraft:  {DocumentActive},
	DocumentActive: {DocumentDraft},
}

// Document is a building document (regulation, minutes, form) with attached files.
type Document struct {
	Base
	Title       string         `json:"title"`
	Category    string         `json:"category,omitempty"`
	Building    string         `json:"building,omitempty"`
	Description string         `json:"description,omitempty"`
	Status      DocumentStatus `json:"status"`
	Attachments []Attachment   `json:"attachments"`
}

// NewDocument returns a blank draft document.
func NewDocument() *Document {
	return &Document{Status: DocumentDraft, Attachments: []Attachment{}}
}

func (d *Document) Clone() *Document {
	c := *d
	c.Attachments = cloneAttachments(d.Attachments)
	return &c
}

func (d *Document) Files() []Attachment { return d.Attachments }

func (d *Document) Validate() error {
	return firstErr(
		required("title", d.Title),
		oneOf("status", d.Status, DocumentTransitions),
	)
}

// DocumentFilter holds the searchable document fields.
type DocumentFilter struct {
	Title    string         `json:"title,omitempty"`
	Category string         `json:"category,omitempty"`
	Building string         `json:"building,omitempty"`
	Status   DocumentStatus `json:"status,omitempty"`
}
