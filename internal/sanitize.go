package internal

import "strings"

// SanitizeString strips line breaks from user-controlled values before
// they are logged or echoed in error bodies, preventing log forging.
func SanitizeString(s string) string {
	replacer := strings.NewReplacer("\n", "", "\r", "", "\t", " ")
	return replacer.Replace(s)
}

// SanitizeByteArray is the byte-slice variant of SanitizeString.
func SanitizeByteArray(b []byte) string {
	return SanitizeString(string(b))
}
