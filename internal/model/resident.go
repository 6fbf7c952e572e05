package model

// ResidentStatus is the lifecycle state of a resident profile.
type ResidentStatus string

const (
	ResidentActive   ResidentStatus = "active"
	ResidentPending  ResidentStatus = "pending"
	ResidentInactive ResidentStatus = "inactive"
)

// ResidentTransitions lists the statuses each resident status may move to.
var ResidentTransitions = map[ResidentStatus][]ResidentStatus{
	ResidentPending:  {ResidentActive, ResidentInactive},
	ResidentActive:   {ResidentInactive},
	ResidentInactive: {ResidentActive},
}

// Resident is a person living in or owning an apartment.
type Resident struct {
	Base
	FullName     string         `json:"fullName"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email,omitempty"`
	IdentityCard string         `json:"identityCard,omitempty"`
	Building     string         `json:"building"`
	Apartment    string         `json:"apartment"`
	Role         string         `json:"role,omitempty"`
	Status       ResidentStatus `json:"status"`
}

// NewResident returns a blank resident awaiting approval.
func NewResident() *Resident {
	return &Resident{Status: ResidentPending}
}

func (r *Resident) Clone() *Resident {
	c := *r
	return &c
}

func (r *Resident) Validate() error {
	return firstErr(
		required("fullName", r.FullName),
		required("phone", r.Phone),
		required("building", r.Building),
		required("apartment", r.Apartment),
		oneOf("status", r.Status, ResidentTransitions),
	)
}

// ResidentFilter holds the searchable resident fields. Apartment depends on Building.
type ResidentFilter struct {
	Name      string         `json:"name,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Building  string         `json:"building,omitempty"`
	Apartment string         `json:"apartment,omitempty"`
	Status    ResidentStatus `json:"status,omitempty"`
}
