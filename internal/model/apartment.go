package model

// ApartmentStatus is the lifecycle state of an apartment unit.
type ApartmentStatus string

const (
	ApartmentDraft    ApartmentStatus = "draft"
	ApartmentActive   ApartmentStatus = "active"
	ApartmentInactive ApartmentStatus = "inactive"
)

// ApartmentTransitions lists the statuses each apartment status may move to.
var ApartmentTransitions = map[ApartmentStatus][]ApartmentStatus{
	ApartmentDraft:    {ApartmentActive},
	ApartmentActive:   {ApartmentInactive},
	ApartmentInactive: {ApartmentActive},
}

// Apartment is a unit inside a building.
type Apartment struct {
	Base
	Code      string          `json:"code"`
	Building  string          `json:"building"`
	Floor     int             `json:"floor"`
	Area      float64         `json:"area"`
	OwnerName string          `json:"ownerName,omitempty"`
	Status    ApartmentStatus `json:"status"`
}

// NewApartment returns a blank draft apartment.
func NewApartment() *Apartment {
	return &Apartment{Status: ApartmentDraft}
}

func (a *Apartment) Clone() *Apartment {
	c := *a
	return &c
}

func (a *Apartment) Validate() error {
	if err := firstErr(
		required("code", a.Code),
		required("building", a.Building),
		oneOf("status", a.Status, ApartmentTransitions),
	); err != nil {
		return err
	}
	if a.Area < 0 {
		return fieldErr("area", "must not be negative")
	}
	return nil
}

// ApartmentFilter holds the searchable apartment fields. Code depends on Building.
type ApartmentFilter struct {
	Building string          `json:"building,omitempty"`
	Code     string          `json:"code,omitempty"`
	Owner    string          `json:"owner,omitempty"`
	Status   ApartmentStatus `json:"status,omitempty"`
}
