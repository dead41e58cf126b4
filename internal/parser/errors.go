package parser

import (
	"fmt"
	"strings"
)

// MapError takes a raw input and a participle error, and returns a
// human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your die spec")
	}

	if strings.HasPrefix(strings.ToLower(input), "faces") {
		return fmt.Errorf("An explicit spec must be: faces: <label>... [weights: <number>...]")
	}
	return fmt.Errorf("A die spec must be either dN (e.g. d6) or: faces: <label>... [weights: <number>...]")
}
