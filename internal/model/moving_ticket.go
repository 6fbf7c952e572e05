package model

import "time"

// TicketStatus is the review state of a moving ticket.
type TicketStatus string

const (
	TicketNew      TicketStatus = "new"
	TicketPending  TicketStatus = "pending"
	TicketApproved TicketStatus = "approved"
	TicketRejected TicketStatus = "rejected"
)

// TicketTransitions lists the statuses each ticket status may move to.
// Approved and rejected tickets are final.
var TicketTransitions = map[TicketStatus][]TicketStatus{
	TicketNew:      {TicketPending, TicketApproved, TicketRejected},
	TicketPending:  {TicketApproved, TicketRejected},
	TicketApproved: nil,
	TicketRejected: nil,
}

// MovingDirection says whether a resident moves in or out.
type MovingDirection string

const (
	MovingIn  MovingDirection = "in"
	MovingOut MovingDirection = "out"
)

// MovingTicket is a request to move furniture in or out of a building.
type MovingTicket struct {
	Base
	ResidentName string          `json:"residentName"`
	Building     string          `json:"building"`
	Apartment    string          `json:"apartment"`
	Direction    MovingDirection `json:"direction"`
	MovingDate   time.Time       `json:"movingDate"`
	Note         string          `json:"note,omitempty"`
	Status       TicketStatus    `json:"status"`
}

func NewMovingTicket() *MovingTicket {
	return &MovingTicket{Status: TicketNew, Direction: MovingIn}
}

func (m *MovingTicket) Clone() *MovingTicket {
	c := *m
	return &c
}

func (m *MovingTicket) Validate() error {
	if err := firstErr(
		required("residentName", m.ResidentName),
		required("building", m.Building),
		required("apartment", m.Apartment),
		oneOf("status", m.Status, TicketTransitions),
	); err != nil {
		return err
	}
	if m.Direction != MovingIn && m.Direction != MovingOut {
		return fieldErr("direction", "must be in or out")
	}
	if m.MovingDate.IsZero() {
		return fieldErr("movingDate", "is required")
	}
	return nil
}

// MovingTicketFilter holds the searchable ticket fields. Apartment depends on Building.
type MovingTicketFilter struct {
	ResidentName string          `json:"residentName,omitempty"`
	Building     string          `json:"building,omitempty"`
	Apartment    string          `json:"apartment,omitempty"`
	Direction    MovingDirection `json:"direction,omitempty"`
	Status       TicketStatus    `json:"status,omitempty"`
	From         string          `json:"from,omitempty"`
	To           string          `json:"to,omitempty"`
}
