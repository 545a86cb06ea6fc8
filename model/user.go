package model

import "time"

// User is one account row in users.csv. Credentials are stored in plain
// text; this mirrors the sign-up file the application has always kept and
// is explicitly not a security boundary.
type User struct {
	Email        string
	Password     string
	Name         string
	RegisteredAt time.Time
}
