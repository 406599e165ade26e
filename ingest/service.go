package ingest

import (
	"log"
	"strconv"

	"github.com/camden-git/presenceboard/audit"
)

// StatusStore is the slice of the status repository the ingestion service
// needs: roster existence and the compare-and-decide status write.
type StatusStore interface {
	Exists(personID uint) (bool, error)
	// SetStatus applies a conditional status write and returns the prior
	// status, or nil when this is the first report for the person.
	SetStatus(personID uint, status int, timestamp string) (*int, error)
}

// Auditor records categorized ingestion events. Implementations must be
// fire-and-forget; the service never inspects a result.
type Auditor interface {
	RecordFormatError(rawPayload string)
	RecordUnregisteredID(rawID, rawPayload string)
	RecordStatusChange(personID uint, oldStatus, newStatus int, timestamp string)
}

// OutcomeKind classifies the aggregate result of one payload.
type OutcomeKind int

const (
	// OutcomeSuccess: every pair was consumed; unknown ids may have been
	// skipped (and audited) along the way.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeStructuralError: the payload (or a status token in it) was
	// malformed; processing stopped and remaining pairs were dropped.
	OutcomeStructuralError
	// OutcomeInfrastructureError: the store failed mid-batch; pairs applied
	// before the failure stay applied.
	OutcomeInfrastructureError
)

// Reason codes surfaced to the caller on error outcomes.
const (
	ReasonFormatError   = "format_error"
	ReasonInvalidStatus = "invalid_status"
	ReasonDBError       = "db_error"
)

// Outcome is the aggregate result of processing one payload.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

// Service drives per-pair ingestion: parse, validate, roster gate,
// conditional write, audit trail.
type Service struct {
	Store StatusStore
	Audit Auditor

	// Now yields the timestamp written to status rows and audit lines.
	// Injected so tests can pin it.
	Now func() string
}

func NewService(store StatusStore, auditor Auditor) *Service {
	return &Service{Store: store, Audit: auditor, Now: audit.Timestamp}
}

// ProcessPayload runs one device payload through the ingestion pipeline.
//
// A malformed payload or an invalid status token aborts the whole batch as a
// structural error. An id that does not parse or is not on the roster is
// audited and skipped; the batch continues. A store failure aborts the batch
// without rolling back pairs already applied, since each pair's write commits
// independently.
func (s *Service) ProcessPayload(raw string) Outcome {
	pairs, err := Parse(raw)
	if err != nil {
		s.Audit.RecordFormatError(raw)
		return Outcome{Kind: OutcomeStructuralError, Reason: ReasonFormatError}
	}

	for _, pair := range pairs {
		// signs are accepted here; a negative id simply never matches the
		// roster and is skipped below
		id64, err := strconv.ParseInt(pair.ID, 10, 64)
		if err != nil {
			// not even comparable against the roster
			s.Audit.RecordUnregisteredID(pair.ID, raw)
			continue
		}

		// a bad status token anywhere aborts the remaining pairs too,
		// unlike the unknown-id case
		if pair.Status != "0" && pair.Status != "1" {
			s.Audit.RecordFormatError(raw)
			return Outcome{Kind: OutcomeStructuralError, Reason: ReasonInvalidStatus}
		}
		status := 0
		if pair.Status == "1" {
			status = 1
		}

		if id64 < 0 {
			s.Audit.RecordUnregisteredID(pair.ID, raw)
			continue
		}
		personID := uint(id64)

		exists, err := s.Store.Exists(personID)
		if err != nil {
			log.Printf("ingest: existence check failed for id=%d: %v", personID, err)
			return Outcome{Kind: OutcomeInfrastructureError, Reason: ReasonDBError}
		}
		if !exists {
			s.Audit.RecordUnregisteredID(pair.ID, raw)
			continue
		}

		timestamp := s.Now()

		oldStatus, err := s.Store.SetStatus(personID, status, timestamp)
		if err != nil {
			log.Printf("ingest: status write failed for id=%d: %v", personID, err)
			return Outcome{Kind: OutcomeInfrastructureError, Reason: ReasonDBError}
		}

		// first report is silent; unchanged status is a no-op
		if oldStatus != nil && *oldStatus != status {
			s.Audit.RecordStatusChange(personID, *oldStatus, status, timestamp)
		}
	}

	return Outcome{Kind: OutcomeSuccess}
}
