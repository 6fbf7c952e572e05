package model

// ReportStatus is the handling state of a resident report.
type ReportStatus string

const (
	ReportNew      ReportStatus = "new"
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// ReportTransitions lists the statuses each report status may move to.
var ReportTransitions = map[ReportStatus][]ReportStatus{
	ReportNew:      {ReportPending, ReportResolved, ReportRejected},
	ReportPending:  {ReportResolved, ReportRejected},
	ReportResolved: nil,
	ReportRejected: nil,
}

// Report is an issue raised by a resident (broken elevator, noise, ...).
type Report struct {
	Base
	Title    string       `json:"title"`
	Category string       `json:"category,omitempty"`
	Building string       `json:"building,omitempty"`
	Reporter string       `json:"reporter"`
	Content  string       `json:"content,omitempty"`
	Status   ReportStatus `json:"status"`
}

func NewReport() *Report {
	return &Report{Status: ReportNew}
}

func (r *Report) Clone() *Report {
	c := *r
	return &c
}

func (r *Report) Validate() error {
	return firstErr(
		required("title", r.Title),
		required("reporter", r.Reporter),
		oneOf("status", r.Status, ReportTransitions),
	)
}

type ReportFilter struct {
	Title    string       `json:"title,omitempty"`
	Category string       `json:"category,omitempty"`
	Building string       `json:"building,omitempty"`
	Reporter string       `json:"reporter,omitempty"`
	Status   ReportStatus `json:"status,omitempty"`
}
