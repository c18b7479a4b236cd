package models

import (
	"fmt"
	"strings"
)

// Difficulty is stored as an integer and exposed as its name.
type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyIntermediate
	DifficultyAdvanced
)

var difficultyNames = map[Difficulty]string{
	DifficultyBeginner:     "Beginner",
	DifficultyIntermediate: "Intermediate",
	DifficultyAdvanced:     "Advanced",
}

// DifficultyNames lists the accepted tags in order.
func DifficultyNames() []string {
	return []string{"Beginner", "Intermediate", "Advanced"}
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

// ParseDifficulty matches a tag case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for d, name := range difficultyNames {
		if strings.EqualFold(name, s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("difficulty must be one of %s", strings.Join(DifficultyNames(), ", "))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
