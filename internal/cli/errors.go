package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Note errors
	ErrNoteNotFound  = "NOTE_NOT_FOUND"
	ErrNoteExists    = "NOTE_EXISTS"
	ErrNoteMalformed = "NOTE_MALFORMED"

	// Resolution errors
	ErrRefAmbiguous = "REF_AMBIGUOUS"
	ErrRefNotFound  = "REF_NOT_FOUND"

	// Task errors
	ErrInvalidStatus  = "INVALID_STATUS"
	ErrMissingSection = "MISSING_SECTION"

	// Reference errors
	ErrCitekeyNotFound = "CITEKEY_NOT_FOUND"
	ErrDuplicateDOI    = "DUPLICATE_DOI"
	ErrCrossrefFailed  = "CROSSREF_FAILED"

	// LLM errors
	ErrLLMUnavailable   = "LLM_UNAVAILABLE"
	ErrLLMTimeout       = "LLM_TIMEOUT"
	ErrLLMModelNotFound = "LLM_MODEL_NOT_FOUND"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
