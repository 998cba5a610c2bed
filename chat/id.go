package chat

import "regexp"

// uuidPattern matches the canonical hyphenated 8-4-4-4-12 form with the
// version nibble constrained to 1-5 and the variant nibble to 8, 9, a or b.
var uuidPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsValidUUID reports whether s is a canonical RFC 4122 conversation id.
// The draft marker and any other malformed id mean "no conversation yet",
// never an error.
func IsValidUUID(s string) bool {
	return uuidPattern.MatchString(s)
}
