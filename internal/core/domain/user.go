package domain

import "time"

const (
	RoleSimpleMortal = "simple mortal"
	RoleAdmin        = "admin"
)

// TimestampLayout is the fixed wire format for created_at and last_login.
const TimestampLayout = "01/02/06 15:04:05"

// ActivityWindow is how recently a user must have logged in to be
// reported as active by List.
const ActivityWindow = 30 * 24 * time.Hour

// User is the account record persisted in the users collection. ID doubles
// as the login username and is the sole lookup key for every operation.
// The plaintext password is accepted on input only and never stored or
// echoed back; the persisted credential lives in HashedPass.
type User struct {
	ID         string `json:"_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at,omitempty"`
	LastLogin  string `json:"last_login,omitempty"`
	HashedPass string `json:"hashed_pass,omitempty"`
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// ActiveAt derives the activity flag from a last_login timestamp: true iff
// lastLogin is present, parses under TimestampLayout, and falls within
// ActivityWindow of now. A missing or unparseable value means inactive.
func ActiveAt(lastLogin string, now time.Time) bool {
	if lastLogin == "" {
		return false
	}
	t, err := time.ParseInLocation(TimestampLayout, lastLogin, now.Location())
	if err != nil {
		return false
	}
	return now.Sub(t) <= ActivityWindow
}
