package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAbsoluteURL(t *testing.T) {
	for _, ok := range []string{"https://github.com/example", "http://localhost:3000/app"} {
		assert.True(t, IsAbsoluteURL(ok), ok)
	}
	for _, bad := range []string{"github.com/example", "/relative/path", "mailto:", "not a url", ""} {
		assert.False(t, IsAbsoluteURL(bad), bad)
	}
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, isStrongPassword("Secret1!"))

	for _, weak := range []string{"Se1!", "secret1!", "SECRET1!", "Secret!!", "Secret12"} {
		assert.False(t, isStrongPassword(weak), weak)
	}
}

func TestIsCleanText(t *testing.T) {
	for _, ok := range []string{"Spring Boot", "C#", "Café", "line one\nline two\ttabbed"} {
		assert.True(t, isCleanText(ok), ok)
	}
	for _, bad := range []string{"\ufffd\ufffd", "we\x00b", "bell\a", "\xff\xfe"} {
		assert.False(t, isCleanText(bad), bad)
	}
}

func TestCleanTextRule(t *testing.T) {
	fields := fieldErrors(NameInput{Name: "\ufffd\ufffd"})
	assert.Equal(t, []string{"name contains invalid characters"}, fields["name"])
	assert.Nil(t, fieldErrors(NameInput{Name: "Web"}))
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	fields := fieldErrors(TechnologyInput{Name: "x"})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "technologyGroupId")

	assert.Nil(t, fieldErrors(NameInput{Name: "Web"}))
}

func TestValidationErrorMergesExtraChecks(t *testing.T) {
	assert.NoError(t, validationError(nil, nil))

	err := validationError(nil, map[string]string{"endDate": "endDate cannot be before startDate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDateUnmarshal(t *testing.T) {
	var in struct {
		Start *Date `json:"start"`
		End   *Date `json:"end"`
		None  *Date `json:"none"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-02-01","end":"2024-03-05T10:30:00Z","none":null}`), &in))

	require.NotNil(t, in.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *in.Start.ptr())
	assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), *in.End.ptr())
	assert.Nil(t, in.None.ptr())

	for _, raw := range []string{`{"start":"01/02/2024"}`, `{"start":"not a date"}`, `{"start":20240102}`} {
		var bad struct {
			Start *Date `json:"start"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &bad), raw)
		assert.True(t, bad.Start.malformed(), raw)
		assert.Nil(t, bad.Start.ptr(), raw)
	}
	assert.False(t, in.Start.malformed())
	assert.False(t, in.None.malformed())
}
