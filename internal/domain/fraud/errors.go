package fraud

import "errors"

var (
	// ErrProfileNotFound means the target profile does not exist; fatal,
	// no assessment is produced
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrDependencyUnavailable means a collaborator store failed. For the
	// profile read it is fatal; for the result write the computed
	// assessment is still returned alongside it.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrAssessmentNotFound means no stored assessment exists for the user
	ErrAssessmentNotFound = errors.New("fraud assessment not found")

	// ErrMissingUserID means the caller supplied an empty user identifier
	ErrMissingUserID = errors.New("user id is required")
)
