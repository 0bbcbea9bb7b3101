package domain

import "strings"

// PublicUserID owns tables decoded from share links. Such tables are
// transient and never written to storage.
const PublicUserID = "public"

// User represents a local scholar profile
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Picture  string `json:"picture,omitempty"`
}

// DeriveEmail builds the synthetic address assigned at registration
func DeriveEmail(username string) string {
	name := strings.ToLower(strings.TrimSpace(username))
	name = strings.Join(strings.Fields(name), ".")
	return name + "@lexicon.edu"
}
