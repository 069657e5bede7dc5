package validators

import (
	"fmt"
	"regexp"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername enforces the allowed username alphabet and rejects the
// reserved name "me", which collides with the self-service endpoint.
func ValidateUsername(username string) error {
	if username == "me" {
		return fmt.Errorf("username may not be %q", "me")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateSlug enforces the URL-safe slug alphabet.
func ValidateSlug(slug string) error {
	if !slugRe.MatchString(slug) {
		return fmt.Errorf("slug may contain only letters, digits, hyphens and underscores")
	}
	return nil
}
