package schema

import (
	"regexp"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// MaxNameLength is the maximum tool name length accepted by models.
const MaxNameLength = 64

var (
	validName        = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	invalidNameRunes = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsValidName returns true when the name satisfies the tool naming
// constraint.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

// NormalizeName repairs a tool name: runs of disallowed characters are
// replaced with a single underscore and over-long names are truncated,
// keeping the leading segments and the final segment. Valid names are
// returned unchanged. Returns an empty string when the name contains no
// usable characters.
func NormalizeName(name string) string {
	if IsValidName(name) {
		return name
	}

	name = invalidNameRunes.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return ""
	}
	if len(name) > MaxNameLength {
		name = truncateName(name)
	}
	return name
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// truncateName shortens a name to MaxNameLength, preserving the first
// three underscore-separated segments (typically "api_call_<method>")
// and the final segment.
func truncateName(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) >= 4 {
		prefix := strings.Join(parts[:3], "_")
		suffix := parts[len(parts)-1]
		if remaining := MaxNameLength - len(prefix) - len(suffix) - 2; remaining > 0 {
			middle := strings.Join(parts[3:len(parts)-1], "_")
			if len(middle) > remaining {
				middle = middle[:remaining]
			}
			middle = strings.TrimRight(middle, "_")
			if middle == "" {
				return prefix + "_" + suffix
			}
			return prefix + "_" + middle + "_" + suffix
		}
	}
	return name[:MaxNameLength]
}
