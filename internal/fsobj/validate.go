package fsobj

import "strings"

// Terminate clips name to what fits inside a buffer of the given capacity
// with a terminator, and to the first embedded NUL if one is present. Fail
// paths use it so a malformed input is always safe to include in diagnostic
// text.
func Terminate(name string, capacity int) string {
	if capacity <= 0 {
		return ""
	}
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	if len(name) > capacity-1 {
		name = name[:capacity-1]
	}
	return name
}

// scanName locates the effective name inside its buffer: the characters up
// to the first NUL, which must leave room for a terminator within capacity.
// Returns the effective name and false when the buffer is empty or
// unterminated.
func scanName(name string, capacity int) (string, bool) {
	if capacity <= 0 {
		return "", false
	}
	length := strings.IndexByte(name, 0)
	if length < 0 {
		length = len(name)
	}
	if length == 0 || length >= capacity {
		return "", false
	}
	return name[:length], true
}

// isValidName reports whether every character is legal for an onboard
// filename: letters, digits, path separators, and a small punctuation set.
func isValidName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '/' || c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
