package model

import "time"

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	NotificationDraft NotificationStatus = "draft"
	NotificationSent  NotificationStatus = "sent"
)

// NotificationTransitions lists the statuses each notification status may move to.
var NotificationTransitions = map[NotificationStatus][]NotificationStatus{
	NotificationDraft: {NotificationSent},
	NotificationSent:  nil,
}

// Notification is a message pushed to the residents of a building.
type Notification struct {
	Base
	Title    string             `json:"title"`
	Content  string             `json:"content"`
	Building string             `json:"building,omitempty"`
	Audience string             `json:"audience,omitempty"`
	SendAt   *time.Time         `json:"sendAt,omitempty"`
	Status   NotificationStatus `json:"status"`
}

func NewNotification() *Notification {
	return &Notification{Status: NotificationDraft}
}

func (n *Notification) Clone() *Notification {
	c := *n
	if n.SendAt != nil {
		t := *n.SendAt
		c.SendAt = &t
	}
	return &c
}

func (n *Notification) Validate() error {
	return firstErr(
		required("title", n.Title),
		required("content", n.Content),
		oneOf("status", n.Status, NotificationTransitions),
	)
}

type NotificationFilter struct {
	Title    string             `json:"title,omitempty"`
	Building string             `json:"building,omitempty"`
	Audience string             `json:"audience,omitempty"`
	Status   NotificationStatus `json:"status,omitempty"`
}
