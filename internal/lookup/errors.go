package lookup

import "github.com/rotisserie/eris"

// Sentinel errors returned by Resolver.Lookup. Match them with eris.Is.
var (
	// ErrInvalidEmail means the query email failed validation. No source
	// was contacted.
	ErrInvalidEmail = eris.New("lookup: invalid email address")
	// ErrNoMatch means every source and search came back empty.
	ErrNoMatch = eris.New("lookup: no linkedin profile found")
)
