package domain

import (
	"encoding/json"
	"strings"
)

// DecodeNationalities turns the stored nationalities column into a list.
// Legacy rows may hold a bare string instead of a JSON array; such values
// become a single-element list.
func DecodeNationalities(stored string) []string {
	trimmed := strings.TrimSpace(stored)
	if trimmed == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil && list != nil {
		return list
	}
	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil && single != "" {
		return []string{single}
	}
	return []string{stored}
}

// EncodeNationalities serializes the list as JSON text for storage.
func EncodeNationalities(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}
