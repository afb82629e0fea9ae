package domain

// User is a read-only view of an identity-service record.
type User struct {
	ID          string
	PhoneNumber string
	Active      bool
	Deleted     bool
}

// CanTransfer reports whether the user may take part in a transfer.
func (u *User) CanTransfer() bool {
	return u.Active && !u.Deleted
}
