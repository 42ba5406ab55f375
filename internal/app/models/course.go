package models

import "time"

// Course is an entry of the course catalog
type Course struct {
	ID         int64     `json:"id" db:"id"`
	CourseName string    `json:"course_name" db:"course_name"`
	CreatedAt  time.Time `json:"-" db:"created_at"`
	UpdatedAt  time.Time `json:"-" db:"updated_at"`
}
