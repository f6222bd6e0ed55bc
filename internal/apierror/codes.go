package apierror

// Error type URIs following the urn:wellspring:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:wellspring:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:wellspring:error:not_found"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:wellspring:error:unauthorized"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:wellspring:error:internal"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:wellspring:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleUnauthorized = "Authentication Required"
	TitleInternal     = "Internal Server Error"
	TitleBadRequest   = "Bad Request"
)
