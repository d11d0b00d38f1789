package api

import "github.com/google/uuid"

// NewID generates a new resource identifier. Users, people, and gifts all
// share the same id format.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks whether the given string is a syntactically well-formed
// resource identifier. Ownership-gated routes treat a malformed id exactly
// like an absent one.
func ValidateID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	// uuid.Parse accepts several encodings (URN, braced, no hyphens);
	// only the canonical form is a valid resource id.
	return parsed.String() == id
}
