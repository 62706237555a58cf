package entity

import "time"

type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "Pending"
	StatusResolved ComplaintStatus = "Resolved"
)

// ParseStatus accepts only the exact enum spellings.
func ParseStatus(s string) (ComplaintStatus, bool) {
	switch ComplaintStatus(s) {
	case StatusPending, StatusResolved:
		return ComplaintStatus(s), true
	}
	return "", false
}

// Owner is the subset of User shown next to a complaint.
type Owner struct {
	ID       string
	FullName string
	Email    string
}

// Complaint is owned by exactly one user. Only Status ever changes after
// creation.
type Complaint struct {
	ID          string
	UserID      string
	Category    string
	Subject     string
	Description string
	Status      ComplaintStatus
	Date        time.Time

	// Owner is populated only by listings that join users, and stays nil
	// when the owning account no longer exists.
	Owner *Owner
}
