package models

// Mentor is a user allowed to teach the courses in CourseIDs (the mentor's bucket)
type Mentor struct {
	ID        int64   `json:"id" db:"id"`
	UserID    int64   `json:"mentor" db:"user_id"`
	CourseIDs []int64 `json:"course"`

	// Relations (populated when needed)
	User *User `json:"-"`
}

// DisplayName is the mentor's full name when the user relation is loaded
func (m *Mentor) DisplayName() string {
	if m.User == nil {
		return ""
	}
	return m.User.FullName()
}
