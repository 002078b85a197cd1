package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes the repositories branch on
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isForeignKeyViolation reports whether err is a referential integrity
// failure, e.g. inserting a comment whose post row is gone.
func isForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

// isRetryableConflict reports whether err is a concurrency failure the caller
// may resolve by resubmitting.
func isRetryableConflict(err error) bool {
	code := pqCode(err)
	return code == codeSerializationFail || code == codeDeadlockDetected
}
