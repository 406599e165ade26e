package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/presenceboard/models"
	"github.com/camden-git/presenceboard/repository"
)

type AdminHandler struct {
	PersonRepo repository.PersonRepositoryInterface
}

func (ah *AdminHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := ah.PersonRepo.ListAll()
	if err != nil {
		log.Printf("Error listing people: %v", err)
		writeError(w, http.StatusInternalServerError, "failed_to_fetch_people")
		return
	}
	if people == nil {
		people = []models.Person{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": "ok", "data": people})
}

func (ah *AdminHandler) AddPerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Department string `json:"department"`
		Grade      string `json:"grade"`
		Role       string `json:"role"`
		Room       string `json:"room"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	person := models.Person{
		Name:       req.Name,
		Department: req.Department,
		Grade:      req.Grade,
		Role:       req.Role,
		Room:       req.Room,
	}
	if err := ah.PersonRepo.Create(&person); err != nil {
		log.Printf("Error creating person '%s': %v", req.Name, err)
		writeError(w, http.StatusInternalServerError, "insert_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": "ok", "id": person.ID})
}

func (ah *AdminHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "person_id")
	personID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_person_id")
		return
	}

	if err := ah.PersonRepo.Delete(uint(personID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "person_not_found")
			return
		}
		log.Printf("Error deleting person %d: %v", personID, err)
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

// BulkUpdate applies a whole admin submission of roster row changes in one
// transaction. Row-level problems come back in the detail; an unexpected
// store failure means nothing was applied.
func (ah *AdminHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var rows []repository.BulkRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_records")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "missing_records")
		return
	}

	outcome, err := ah.PersonRepo.ApplyBulk(rows)
	if err != nil {
		log.Printf("Error applying bulk roster update: %v", err)
		writeError(w, http.StatusInternalServerError, "bulk_update_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"result": "ok", "detail": outcome})
}
