package waterfall

import "github.com/sells-group/linkedin-lookup/internal/model"

// Assemble folds identity layers into a single hint. Layers are given
// highest priority first; each field takes the first non-empty value.
func Assemble(layers ...model.PartialIdentity) model.IdentityHint {
	var h model.IdentityHint
	for _, l := range layers {
		fill(&h.Name, l.Name)
		fill(&h.Company, l.Company)
		fill(&h.Location, l.Location)
		fill(&h.LinkedInURL, l.LinkedInURL)
	}
	return h
}

func fill(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
