package models

// PropertyRole is the caller's relation to a property.
type PropertyRole string

// ReportType distinguishes inspection kinds.
type ReportType string

// ApprovalStatus is nil on a report until it is approved or rejected.
type ApprovalStatus string

const (
	PropertyRoleLandlord PropertyRole = "landlord"
	PropertyRoleRenter   PropertyRole = "renter"
	PropertyRoleOther    PropertyRole = "other"

	ReportTypeMoveIn  ReportType = "move-in"
	ReportTypeMoveOut ReportType = "move-out"
	ReportTypeGeneral ReportType = "general"

	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func (r PropertyRole) Valid() bool {
	switch r {
	case PropertyRoleLandlord, PropertyRoleRenter, PropertyRoleOther:
		return true
	}
	return false
}

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeMoveIn, ReportTypeMoveOut, ReportTypeGeneral:
		return true
	}
	return false
}
