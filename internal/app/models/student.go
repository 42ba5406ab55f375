package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"student" db:"user_id"`

	User *User `json:"-"`
}
