package model

// LinkStatus is the numeric state of a user-apartment link as the upstream API encodes it.
type LinkStatus int

const (
	LinkRejected LinkStatus = -1
	LinkUnlinked LinkStatus = 0
	LinkLinked   LinkStatus = 1
	LinkPending  LinkStatus = 2
)

// LinkTransitions lists the statuses each link status may move to.
// Pending requests are approved, refused or rejected; linked and unlinked
// toggle (lock/unlock); rejected is final.
var LinkTransitions = map[LinkStatus][]LinkStatus{
	LinkPending:  {LinkLinked, LinkUnlinked, LinkRejected},
	LinkLinked:   {LinkUnlinked},
	LinkUnlinked: {LinkLinked},
	LinkRejected: nil,
}

// UserApartment links an app user to an apartment. Attachments hold the
// ownership or tenancy proof uploaded with the request.
type UserApartment struct {
	Base
	UserName    string       `json:"userName"`
	Phone       string       `json:"phone"`
	Building    string       `json:"building"`
	Apartment   string       `json:"apartment"`
	Relation    string       `json:"relation,omitempty"`
	Status      LinkStatus   `json:"status"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

func NewUserApartment() *UserApartment {
	return &UserApartment{Status: LinkPending}
}

func (u *UserApartment) Clone() *UserApartment {
	c := *u
	c.Attachments = cloneAttachments(u.Attachments)
	return &c
}

func (u *UserApartment) Files() []Attachment { return u.Attachments }

func (u *UserApartment) Validate() error {
	return firstErr(
		required("userName", u.UserName),
		required("phone", u.Phone),
		required("building", u.Building),
		required("apartment", u.Apartment),
		oneOf("status", u.Status, LinkTransitions),
	)
}

// UserApartmentFilter holds the searchable link fields. Apartment depends on Building.
// Status is a pointer because LinkUnlinked is the zero value.
type UserApartmentFilter struct {
	UserName  string      `json:"userName,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Building  string      `json:"building,omitempty"`
	Apartment string      `json:"apartment,omitempty"`
	Status    *LinkStatus `json:"status,omitempty"`
}
