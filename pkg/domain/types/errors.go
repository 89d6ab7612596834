package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for source management. Callers match them with errors.Is
// to decide the user-facing failure mode.
var (
	ErrInvalidRepoURL  = goerr.New("invalid repository identifier")
	ErrDuplicateSource = goerr.New("duplicate source")
	ErrSourceNotFound  = goerr.New("source not found")
)
