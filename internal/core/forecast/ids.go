package forecast

import (
	"time"

	"github.com/google/uuid"
)

// occurrenceNamespace seeds the UUIDv5 derivation for generated transaction
// identities. The contract is that the same (rule, date) always yields the
// same id across recomputations, so list diffing in callers stays stable.
var occurrenceNamespace = uuid.MustParse("8f3c1a4e-5b2d-4c6f-9a1e-7d0b3f5c8a21")

// occurrenceID derives the deterministic identity of one generated
// transaction. kind keeps the id spaces of the different generators disjoint
// even when they share a rule id.
func occurrenceID(kind, ruleID string, date time.Time) string {
	return uuid.NewSHA1(occurrenceNamespace, []byte(kind+"|"+ruleID+"|"+date.Format(dateKeyFormat))).String()
}
