package domain

import "time"

// UnknownName is rendered for references to departments or users that no longer exist.
const UnknownName = "unknown"

// Department represents a requesting organizational unit.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
