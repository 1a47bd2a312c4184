package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// idRegex splits `name` or `name(2)` into its base and ordinal.
var idRegex = regexp.MustCompile(`^([a-zA-Z0-9_.\- ]+?)(?:\((\d+)\))?$`)

// isValidBase checks for undesirable but technically matching names.
func isValidBase(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name {
		return false
	}
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return true
}

// Parse creates an ID by parsing its canonical string representation.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("identifier cannot be empty")
	}

	matches := idRegex.FindStringSubmatch(raw)
	if matches == nil {
		return ID{}, fmt.Errorf("invalid identifier format: %q", raw)
	}

	base := matches[1]
	if !isValidBase(base) {
		return ID{}, fmt.Errorf("invalid identifier base: %q", base)
	}

	id := New(base)
	if matches[2] != "" {
		ordinal, err := strconv.Atoi(matches[2])
		if err != nil {
			// Unreachable due to regex `\d+`
			return ID{}, fmt.Errorf("internal error parsing ordinal: %w", err)
		}
		if ordinal < 2 {
			return ID{}, fmt.Errorf("ordinal must be at least 2, got %d in %q", ordinal, raw)
		}
		id.Ordinal = ordinal
	}
	return id, nil
}

// String renders the canonical form of the identifier.
func (id ID) String() string {
	if !id.HasOrdinal() {
		return id.Base
	}
	return fmt.Sprintf("%s(%d)", id.Base, id.Ordinal)
}

// Sanitize turns an arbitrary operator label into a valid identifier base.
// Characters outside the accepted set are replaced by '-'.
func Sanitize(label string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '_' || r == '.' || r == '-' || r == ' ':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	out := sb.String()
	if !isValidBase(out) {
		return "node"
	}
	return out
}
