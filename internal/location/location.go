// Package location validates the slash-delimited location strings used
// both in platform files and in search queries.
package location

import "strings"

// Valid reports whether s is a well-formed location.
//
// A location starts with "/", contains only ASCII letters, digits, '_'
// and '/', and does not end with "/" unless it is the root "/" itself.
func Valid(s string) bool {
	if strings.TrimSpace(s) == "" || s[0] != '/' {
		return false
	}
	if len(s) > 1 && s[len(s)-1] == '/' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !allowed(s[i]) {
			return false
		}
	}
	return true
}

func allowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '/':
		return true
	}
	return false
}
