package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"Beginner", DifficultyBeginner},
		{"intermediate", DifficultyIntermediate},
		{" ADVANCED ", DifficultyAdvanced},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "Expert", "1"} {
		_, err := ParseDifficulty(bad)
		assert.Error(t, err, bad)
	}
}

func TestDifficultyText(t *testing.T) {
	assert.Equal(t, "Intermediate", DifficultyIntermediate.String())
	assert.Equal(t, "Difficulty(9)", Difficulty(9).String())
	assert.False(t, Difficulty(0).Valid())

	data, err := json.Marshal(struct {
		D Difficulty `json:"d"`
	}{DifficultyAdvanced})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"Advanced"}`, string(data))

	var decoded struct {
		D Difficulty `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"beginner"}`), &decoded))
	assert.Equal(t, DifficultyBeginner, decoded.D)

	_, err = json.Marshal(Difficulty(7))
	assert.Error(t, err)
}

func TestDifficultyNamesAreOrdered(t *testing.T) {
	assert.Equal(t, []string{"Beginner", "Intermediate", "Advanced"}, DifficultyNames())
	for i, name := range DifficultyNames() {
		assert.Equal(t, name, Difficulty(i+1).String())
	}
}

func TestUserHasRole(t *testing.T) {
	u := User{Roles: []string{RoleUser}}
	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.HasRole(RoleAdmin))
}

func TestProjectTechnologyIDs(t *testing.T) {
	p := Project{ProjectTechnologies: []ProjectTechnology{{TechnologyID: 3}, {TechnologyID: 1}}}
	assert.Equal(t, []uint{3, 1}, p.TechnologyIDs())
	assert.Empty(t, Project{}.TechnologyIDs())
}
