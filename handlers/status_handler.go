package handlers

import (
	"log"
	"net/http"

	"github.com/camden-git/presenceboard/ingest"
	"github.com/camden-git/presenceboard/repository"
)

type StatusHandler struct {
	Ingest     *ingest.Service
	StatusRepo repository.StatusRepositoryInterface
}

// UpdateStatus accepts a device report: GET /api/status_update?data=<payload>
// where payload is "ID,STATUS,ID,STATUS,...". The whole pipeline lives in the
// ingest service; this handler only maps the outcome onto HTTP.
func (sh *StatusHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("data") {
		writeError(w, http.StatusBadRequest, "missing_data")
		return
	}
	raw := r.URL.Query().Get("data")

	outcome := sh.Ingest.ProcessPayload(raw)
	switch outcome.Kind {
	case ingest.OutcomeSuccess:
		writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
	case ingest.OutcomeStructuralError:
		writeError(w, http.StatusBadRequest, outcome.Reason)
	default:
		writeError(w, http.StatusInternalServerError, outcome.Reason)
	}
}

// StatusView returns the public board listing: every person with their
// latest status, nulls for people who never reported.
func (sh *StatusHandler) StatusView(w http.ResponseWriter, r *http.Request) {
	records, err := sh.StatusRepo.ListView()
	if err != nil {
		log.Printf("Error listing status view: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": "ok", "records": records})
}
