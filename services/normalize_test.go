package services

import (
	"testing"

	"github.com/p-miano/portfolio-api/database"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  web  ", "Web"},
		{"WEB", "Web"},
		{"machine   learning", "Machine Learning"},
		{"\tpROGRAMMING\nlanguages ", "Programming Languages"},
		{"c#", "C#"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), tt.in)
	}
}

// Seeded rows must be found again when a user types the same name.
func TestSeedNamesAreNormalized(t *testing.T) {
	for _, name := range database.SeedCategories {
		assert.Equal(t, name, NormalizeName(name))
	}
	for group, technologies := range database.SeedTechnologies {
		assert.Equal(t, group, NormalizeName(group))
		for _, name := range technologies {
			assert.Equal(t, name, NormalizeName(name))
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestNormalizeLink(t *testing.T) {
	assert.Nil(t, normalizeLink(nil))

	blank := "   "
	assert.Nil(t, normalizeLink(&blank))

	link := " https://example.com "
	got := normalizeLink(&link)
	if assert.NotNil(t, got) {
		assert.Equal(t, "https://example.com", *got)
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
