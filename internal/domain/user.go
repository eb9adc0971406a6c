package domain

import "time"

// User is a person campaigns can be assigned to.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string // emoji or image URL
	CreatedAt time.Time
}
