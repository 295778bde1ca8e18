package auth

import "strings"

// minPasswordLength is the only password requirement; complexity rules are
// left to the client.
const minPasswordLength = 8

// ValidateEmail checks if an email has a valid format.
func ValidateEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

// ValidatePassword checks if a password meets the minimum requirements.
func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}
