package model

// HotlineStatus tells whether a hotline is shown to residents.
type HotlineStatus string

const (
	HotlineActive   HotlineStatus = "active"
	HotlineInactive HotlineStatus = "inactive"
)

// HotlineTransitions lists the statuses each hotline status may move to.
var HotlineTransitions = map[HotlineStatus][]HotlineStatus{
	HotlineActive:   {HotlineInactive},
	HotlineInactive: {HotlineActive},
}

// Hotline is a contact number published for a building.
type Hotline struct {
	Base
	Name     string        `json:"name"`
	Phone    string        `json:"phone"`
	Building string        `json:"building,omitempty"`
	Note     string        `json:"note,omitempty"`
	Status   HotlineStatus `json:"status"`
}

func NewHotline() *Hotline {
	return &Hotline{Status: HotlineActive}
}

func (h *Hotline) Clone() *Hotline {
	c := *h
	return &c
}

func (h *Hotline) Validate() error {
	return firstErr(
		required("name", h.Name),
		required("phone", h.Phone),
		oneOf("status", h.Status, HotlineTransitions),
	)
}

type HotlineFilter struct {
	Name     string        `json:"name,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	Building string        `json:"building,omitempty"`
	Status   HotlineStatus `json:"status,omitempty"`
}
