package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/lookup"
	"github.com/sells-group/linkedin-lookup/internal/model"
)

// User-facing error messages.
const (
	msgInvalidEmail = "Please provide a valid email address."
	msgNoMatch      = "No LinkedIn profile found for this email."
	msgInternal     = "An internal server error occurred. Please try again later."
)

// maxBodyBytes caps the lookup request body.
const maxBodyBytes = 1 << 16

type lookupRequest struct {
	Email   string      `json:"email"`
	Name    optionalStr `json:"name"`
	Country optionalStr `json:"country"`
}

// optionalStr decodes a JSON string and treats any other JSON value as unset.
type optionalStr string

func (o *optionalStr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*o = ""
		return nil //nolint:nilerr
	}
	*o = optionalStr(s)
	return nil
}

// LookupResponse is the success envelope returned by POST /api/lookup.
type LookupResponse struct {
	Success          bool                     `json:"success"`
	SearchedName     string                   `json:"searched_name"`
	MatchedProfiles  []model.CandidateProfile `json:"matched_profiles"`
	CompanyName      *string                  `json:"company_name"`
	CompanyEmployees []model.CandidateProfile `json:"company_employees"`
	SourcesChecked   model.SourcesChecked     `json:"sources_checked"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewLookupResponse converts a result into the success envelope. Empty
// lists encode as [] and a missing company as null.
func NewLookupResponse(res *model.LookupResult) LookupResponse {
	matched := res.MatchedProfiles
	if matched == nil {
		matched = []model.CandidateProfile{}
	}
	employees := res.CompanyEmployees
	if employees == nil {
		employees = []model.CandidateProfile{}
	}
	return LookupResponse{
		Success:          true,
		SearchedName:     res.SearchedName,
		MatchedProfiles:  matched,
		CompanyName:      model.Nullable(res.CompanyName),
		CompanyEmployees: employees,
		SourcesChecked:   res.SourcesChecked,
	}
}

type lookupHandler struct {
	resolver Resolver
}

func (h *lookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidEmail})
		return
	}

	res, err := h.resolver.Lookup(r.Context(), model.Query{
		Email:   req.Email,
		Name:    strings.TrimSpace(string(req.Name)),
		Country: strings.TrimSpace(string(req.Country)),
	})
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			zap.L().Error("api: lookup failed",
				zap.Error(err),
				zap.String("stack", eris.ToString(err, true)),
			)
		}
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, NewLookupResponse(res))
}

// errorStatus maps a lookup error to an HTTP status and user message.
func errorStatus(err error) (int, string) {
	switch {
	case eris.Is(err, lookup.ErrInvalidEmail):
		return http.StatusBadRequest, msgInvalidEmail
	case eris.Is(err, lookup.ErrNoMatch):
		return http.StatusNotFound, msgNoMatch
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("api: write response", zap.Error(err))
	}
}
