package domain

import (
	"strings"
	"unicode/utf8"
)

// Name length bounds shared by lists and todos, counted in characters.
const (
	MinNameLength = 1
	MaxNameLength = 100
)

// NormalizeName trims surrounding whitespace from submitted names.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength
}

// ListNameError validates a normalized list name against the existing lists.
// The list identified by exceptID is ignored by the uniqueness check so a list
// can be renamed to its current name; pass 0 when creating.
func ListNameError(lists []List, name string, exceptID int) *ValidationError {
	if !validLength(name) {
		return lengthError(KeyListNameLength, "list name")
	}
	for _, list := range lists {
		if list.ID == exceptID {
			continue
		}
		if list.Name == name {
			return &ValidationError{Key: KeyListNameUnique, Message: "The list name must be unique."}
		}
	}
	return nil
}

// TodoNameError validates a normalized todo name.
func TodoNameError(name string) *ValidationError {
	if !validLength(name) {
		return lengthError(KeyTodoNameLength, "todo name")
	}
	return nil
}
