package auth

import "depositshield_backend/internal/models"

// Access predicates. They are pure: callers load fresh rows and pass them in.
// A zero userID is anonymous and never matches an owner.

func IsPropertyOwner(property *models.Property, userID uint) bool {
	return property != nil && userID != 0 && property.UserID == userID
}

// CanAccessReport allows the report creator and the owner of the report's property.
func CanAccessReport(report *models.Report, property *models.Property, userID uint) bool {
	if report == nil || userID == 0 {
		return false
	}
	if report.CreatedBy == userID {
		return true
	}
	return property != nil && property.ID == report.PropertyID && property.UserID == userID
}

func CanAccessPhoto(photo *models.Photo, report *models.Report, property *models.Property, userID uint) bool {
	if photo == nil || report == nil || photo.ReportID != report.ID {
		return false
	}
	return CanAccessReport(report, property, userID)
}

// CanMutateReport is creator-only.
func CanMutateReport(report *models.Report, userID uint) bool {
	return report != nil && userID != 0 && report.CreatedBy == userID
}

// CanApproveOrReject accepts the creator or anyone presenting the report's share uuid.
func CanApproveOrReject(report *models.Report, userID uint, suppliedUUID string) bool {
	if report == nil {
		return false
	}
	if userID != 0 && report.CreatedBy == userID {
		return true
	}
	return suppliedUUID != "" && suppliedUUID == report.UUID
}
