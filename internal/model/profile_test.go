package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateProfile_MarshalJSON_NullsEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(CandidateProfile{
		LinkedInURL: "https://www.linkedin.com/in/janedoe",
		Name:        "Jane Doe",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"linkedin_url": "https://www.linkedin.com/in/janedoe",
		"name": "Jane Doe",
		"title": null,
		"company": null,
		"snippet": null
	}`, string(data))
}

func TestCandidateProfile_UnmarshalNull(t *testing.T) {
	t.Parallel()

	var p CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(`{"linkedin_url":null,"name":"Acme Person","company":"Acme"}`), &p))

	assert.Empty(t, p.LinkedInURL)
	assert.Equal(t, "Acme Person", p.Name)
	assert.Equal(t, "Acme", p.Company)
}

func TestNullable(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Nullable(""))
	require.NotNil(t, Nullable("x"))
	assert.Equal(t, "x", *Nullable("x"))
}
