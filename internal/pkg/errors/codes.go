package errors

import "net/http"

// Error codes are stable machine-readable identifiers. The frontend maps them
// to display text; backend logs stay in English.

// Event error codes.
const (
	CodeEventNotFound = "EVENT_NOT_FOUND"
)

// Cluster error codes.
const (
	CodeClusterNotFound = "CLUSTER_NOT_FOUND"
)

// Person error codes.
const (
	CodePersonNotFound        = "PERSON_NOT_FOUND"
	CodePhoneAnalysisNotFound = "PHONE_ANALYSIS_NOT_FOUND"
)

// Dataset error codes.
const (
	CodeReloadFailed = "DATASET_RELOAD_FAILED"
)

// Validation error codes.
const (
	CodeInvalidQuery = "INVALID_QUERY"
	CodeInternal     = "INTERNAL_ERROR"
)

// Convenience constructors using predefined codes.

// ErrEventNotFoundf creates an event not found error.
func ErrEventNotFoundf(eventID string) *AppError {
	return Wrap(ErrNotFound, CodeEventNotFound, "event not found", http.StatusNotFound).
		WithParams(map[string]interface{}{"event_id": eventID})
}

// ErrClusterNotFoundf creates a cluster not found error.
func ErrClusterNotFoundf(clusterID string) *AppError {
	return Wrap(ErrNotFound, CodeClusterNotFound, "cluster not found", http.StatusNotFound).
		WithParams(map[string]interface{}{"event_uid": clusterID})
}

// ErrPersonNotFoundf creates a population registry not found error.
func ErrPersonNotFoundf(personID string) *AppError {
	return Wrap(ErrNotFound, CodePersonNotFound, "person not found", http.StatusNotFound).
		WithParams(map[string]interface{}{"person_id": personID})
}

// ErrPhoneAnalysisNotFoundf creates a phone analysis not found error.
// The phone itself is not echoed back.
func ErrPhoneAnalysisNotFoundf() *AppError {
	return Wrap(ErrNotFound, CodePhoneAnalysisNotFound, "phone analysis not found", http.StatusNotFound)
}

// ErrInvalidQueryf creates a bad request error for a rejected query parameter.
func ErrInvalidQueryf(field, reason string) *AppError {
	return Wrap(ErrBadRequest, CodeInvalidQuery, "invalid query parameter: "+field, http.StatusBadRequest).
		WithFieldErrors([]FieldError{{Field: field, Code: CodeInvalidQuery, Message: reason}})
}

// ErrReloadFailedf creates a service unavailable error for a failed reload.
func ErrReloadFailedf(err error) *AppError {
	return Wrap(err, CodeReloadFailed, "dataset reload failed", http.StatusServiceUnavailable)
}
