package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: row does not exist in the store
// - ErrAlreadyUsed: a unique value (name, CPF) is already taken
// - ErrReferenceMissing: a foreign key points to a row that does not exist
// - ErrUnavailable: store or dependency temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyUsed      = errors.New("already used")
	ErrReferenceMissing = errors.New("reference missing")
	ErrUnavailable      = errors.New("unavailable")
)
