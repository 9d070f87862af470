package controllers

import (
	"regexp"
	"strconv"
	"strings"
)

var unsafeBindingChars = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// SanitizeName replaces every character outside [A-Za-z0-9 ] with "_".
func SanitizeName(name string) string {
	return unsafeBindingChars.ReplaceAllString(name, "_")
}

// BindingName returns the import binding for the definition accepted at slot
// when no earlier binding in the same build already uses that name.
func BindingName(identifier string, slot int) string {
	return SanitizeName(identifier) + strconv.Itoa(slot)
}

// stripSuffix removes suffix matches from name. A nil suffix keeps name as is.
func stripSuffix(name string, suffix *regexp.Regexp) string {
	if suffix == nil {
		return name
	}
	return suffix.ReplaceAllString(name, "")
}

// joinIdentifier joins parent segments and the local name with sep.
// my/path/to + test -> my--path--to--test
func joinIdentifier(parents []string, name, sep string) string {
	parts := make([]string, 0, len(parents)+1)
	parts = append(parts, parents...)
	parts = append(parts, name)
	return strings.Join(parts, sep)
}
