package models

import (
	"time"
)

// InquiryStatus is the workflow state of an inquiry.
// Any status may be set to any other via the update endpoints;
// no transition rules are enforced.
type InquiryStatus string

const (
	// InquiryStatusNew is the state of every freshly submitted inquiry.
	InquiryStatusNew InquiryStatus = "new"
	// InquiryStatusInProgress marks an inquiry an admin is working on.
	InquiryStatusInProgress InquiryStatus = "in_progress"
	// InquiryStatusCompleted marks a handled inquiry.
	InquiryStatusCompleted InquiryStatus = "completed"
	// InquiryStatusCancelled marks an abandoned inquiry.
	InquiryStatusCancelled InquiryStatus = "cancelled"
)

// InquiryStatuses lists all valid status values.
func InquiryStatuses() []InquiryStatus {
	return []InquiryStatus{
		InquiryStatusNew,
		InquiryStatusInProgress,
		InquiryStatusCompleted,
		InquiryStatusCancelled,
	}
}

// InquiryPriority is the urgency of an inquiry, independent of status.
type InquiryPriority string

const (
	// InquiryPriorityLow urgency.
	InquiryPriorityLow InquiryPriority = "low"
	// InquiryPriorityMedium urgency (default).
	InquiryPriorityMedium InquiryPriority = "medium"
	// InquiryPriorityHigh urgency.
	InquiryPriorityHigh InquiryPriority = "high"
	// InquiryPriorityUrgent urgency.
	InquiryPriorityUrgent InquiryPriority = "urgent"
)

// InquiryPriorities lists all valid priority values.
func InquiryPriorities() []InquiryPriority {
	return []InquiryPriority{
		InquiryPriorityLow,
		InquiryPriorityMedium,
		InquiryPriorityHigh,
		InquiryPriorityUrgent,
	}
}

// Inquiry is a customer submitted contact/lead record with a
// status/priority/assignment workflow managed by admins.
type Inquiry struct {
	// ID is the unique identifier for the inquiry.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name of the submitter.
	Name string `gorm:"size:255;not null" json:"name"`
	// Email of the submitter.
	Email string `gorm:"size:255;not null" json:"email"`
	// Phone is an optional contact number.
	Phone string `gorm:"size:20" json:"phone"`
	// ServiceID optionally references the service the inquiry is about.
	ServiceID *uint64 `json:"service_id"`
	// Service is the referenced offering (SET NULL on service delete).
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL" json:"service,omitempty"`
	// Message is the free text body of the inquiry.
	Message string `gorm:"type:text;not null" json:"message"`
	// Status is the workflow state, always "new" on submission.
	Status InquiryStatus `gorm:"type:varchar(20);not null;default:'new';index:idx_inquiries_status_created_at,priority:1" json:"status"`
	// Priority is the urgency set on submission or by an admin.
	Priority InquiryPriority `gorm:"type:varchar(20);not null;default:'medium';index:idx_inquiries_priority_created_at,priority:1" json:"priority"`
	// AssignedTo optionally references an admin user handling the inquiry.
	AssignedTo *uint64 `gorm:"index" json:"assigned_to"`
	// AssignedAdmin is the referenced handling user.
	AssignedAdmin *User `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"assigned_admin,omitempty"`
	// Notes holds internal admin remarks.
	Notes string `gorm:"type:text" json:"notes"`
	// UserID optionally references the account that submitted the inquiry.
	UserID *uint64 `json:"user_id"`
	// User is the referenced submitter account.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time `gorm:"index:idx_inquiries_status_created_at,priority:2;index:idx_inquiries_priority_created_at,priority:2" json:"created_at"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the fixed status values.
func ValidStatus(s InquiryStatus) bool {
	for _, v := range InquiryStatuses() {
		if v == s {
			return true
		}
	}

	return false
}

// ValidPriority reports whether p is one of the fixed priority values.
func ValidPriority(p InquiryPriority) bool {
	for _, v := range InquiryPriorities() {
		if v == p {
			return true
		}
	}

	return false
}
