package user

// User represents a user record owned by the REST backend.
type User struct {
	ID    int64  `json:"id"`    // ID is assigned by the backend
	Name  string `json:"name"`  // Name is the display name of the user
	Email string `json:"email"` // Email is the email address of the user
}

// NewUserDraft holds the create form input before it is submitted.
type NewUserDraft struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

// UpdateUserDraft holds the update form input before it is submitted.
// ID is kept as the text the operator typed.
type UpdateUserDraft struct {
	ID    string `json:"id" form:"id"`
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

// IsEmpty reports whether every draft field is blank.
func (d NewUserDraft) IsEmpty() bool {
	return d.Name == "" && d.Email == ""
}

// IsEmpty reports whether every draft field is blank.
func (d UpdateUserDraft) IsEmpty() bool {
	return d.ID == "" && d.Name == "" && d.Email == ""
}
