package waterfall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

func TestAssemble_PriorityOrder(t *testing.T) {
	user := model.PartialIdentity{Location: "Germany"}
	apollo := model.PartialIdentity{Name: "Jane Doe", Company: "Acme"}
	github := model.PartialIdentity{Name: "jdoe", Company: "Other", Location: "Berlin",
		LinkedInURL: "https://linkedin.com/in/jd-gh"}
	gravatar := model.PartialIdentity{Name: "JD", LinkedInURL: "https://linkedin.com/in/jd-grav"}
	derived := model.PartialIdentity{Name: "jane doe"}

	got := Assemble(user, apollo, github, gravatar, derived)

	assert.Equal(t, model.IdentityHint{
		Name:        "Jane Doe",
		Company:     "Acme",
		Location:    "Germany",
		LinkedInURL: "https://linkedin.com/in/jd-gh",
	}, got)
}

func TestAssemble_UserNameWins(t *testing.T) {
	got := Assemble(
		model.PartialIdentity{Name: "Janet"},
		model.PartialIdentity{Name: "Jane Doe"},
	)
	assert.Equal(t, "Janet", got.Name)
}

func TestAssemble_FallsBackToDerivedName(t *testing.T) {
	got := Assemble(
		model.PartialIdentity{},
		model.PartialIdentity{Location: "Paris"},
		model.PartialIdentity{Name: "p narsunaidu"},
	)
	assert.Equal(t, "p narsunaidu", got.Name)
	assert.Equal(t, "Paris", got.Location)
	assert.Empty(t, got.Company)
	assert.Empty(t, got.LinkedInURL)
}

func TestAssemble_NoLayers(t *testing.T) {
	assert.Equal(t, model.IdentityHint{}, Assemble())
}
