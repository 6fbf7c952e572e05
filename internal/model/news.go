package model

import "time"

// NewsStatus is the visibility of a news post.
type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
	NewsHidden    NewsStatus = "hidden"
)

// NewsTransitions lists the statuses each news status may move to.
var NewsTransitions = map[NewsStatus][]NewsStatus{
	NewsDraft:     {NewsPublished},
	NewsPublished: {NewsHidden},
	NewsHidden:    {NewsPublished},
}

// News is an article shown on the resident app.
type News struct {
	Base
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	Building    string     `json:"building,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Status      NewsStatus `json:"status"`
}

func NewNews() *News {
	return &News{Status: NewsDraft}
}

func (n *News) Clone() *News {
	c := *n
	if n.PublishedAt != nil {
		t := *n.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

func (n *News) Validate() error {
	return firstErr(
		required("title", n.Title),
		required("content", n.Content),
		oneOf("status", n.Status, NewsTransitions),
	)
}

type NewsFilter struct {
	Title    string     `json:"title,omitempty"`
	Building string     `json:"building,omitempty"`
	Status   NewsStatus `json:"status,omitempty"`
}
