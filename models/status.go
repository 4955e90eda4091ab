package models

// Visibility controls whether a record shows up on the public site.
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// Toggle flips visible/hidden.
func (v Visibility) Toggle() Visibility {
	if v == Visible {
		return Hidden
	}
	return Visible
}

// Placement decides whether a promotion goes to the main carousel or to a
// secondary listing page.
type Placement string

const (
	Featured  Placement = "featured"
	Secondary Placement = "secondary"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDoctor   Role = "doctor"
	RoleReferrer Role = "referrer"
)

type ReferrerStatus string

const (
	ReferrerPending  ReferrerStatus = "pending"
	ReferrerApproved ReferrerStatus = "approved"
	ReferrerRejected ReferrerStatus = "rejected"
)

type ActivityStatus string

const (
	Active   ActivityStatus = "active"
	Inactive ActivityStatus = "inactive"
)

// Toggle flips active/inactive.
func (a ActivityStatus) Toggle() ActivityStatus {
	if a == Active {
		return Inactive
	}
	return Active
}
