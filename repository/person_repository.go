package repository

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/camden-git/presenceboard/models"
)

// BulkRow is one row-change record from the admin bulk editor. ID is left
// loosely typed because the editor submits it as a number, a numeric string,
// the literal "null", or not at all; anything empty-ish means "insert".
type BulkRow struct {
	ID         interface{} `json:"id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Grade      string      `json:"grade"`
	Role       string      `json:"role"`
	Room       string      `json:"room"`
}

// BatchOutcome aggregates the result of one bulk roster edit.
type BatchOutcome struct {
	Updated  int      `json:"updated"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors"`
}

// PersonRepository handles database operations for Person entities
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// Create inserts a new person and fills in the auto-assigned id.
func (r *PersonRepository) Create(person *models.Person) error {
	if err := r.DB.Create(person).Error; err != nil {
		return fmt.Errorf("failed to create person %s: %w", person.Name, err)
	}
	return nil
}

// ListAll retrieves all roster rows ordered by department, room, name,
// comparing empty strings like NULL for ordering stability.
func (r *PersonRepository) ListAll() ([]models.Person, error) {
	var people []models.Person
	err := r.DB.
		Order("COALESCE(department, ''), COALESCE(room, ''), COALESCE(name, '')").
		Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// Delete removes a person and their status record in one transaction.
func (r *PersonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", id).Delete(&models.StatusRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete status for person ID %d: %w", id, err)
		}
		result := tx.Delete(&models.Person{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete person ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ApplyBulk applies a batch of roster row changes in a single transaction.
//
// Rows without a usable id insert; rows with an id update by id. A
// non-integer id or an update matching no row is collected as a row error
// and processing continues. Any other store failure rolls back the whole
// batch and is returned to the caller.
func (r *PersonRepository) ApplyBulk(rows []BulkRow) (BatchOutcome, error) {
	outcome := BatchOutcome{Errors: []string{}}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			personID, isInsert, err := resolveRowID(row.ID)
			if err != nil {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("record_error: %v", err))
				continue
			}

			if isInsert {
				person := models.Person{
					Name:       row.Name,
					Department: row.Department,
					Grade:      row.Grade,
					Role:       row.Role,
					Room:       row.Room,
				}
				if err := tx.Create(&person).Error; err != nil {
					return fmt.Errorf("failed to insert roster row: %w", err)
				}
				outcome.Inserted++
				continue
			}

			result := tx.Model(&models.Person{}).Where("id = ?", personID).
				Updates(map[string]interface{}{
					"name":       row.Name,
					"department": row.Department,
					"grade":      row.Grade,
					"role":       row.Role,
					"room":       row.Room,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update roster row id=%d: %w", personID, result.Error)
			}
			if result.RowsAffected > 0 {
				outcome.Updated++
			} else {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("no_target_for_update id=%d", personID))
			}
		}
		return nil
	})
	if err != nil {
		return BatchOutcome{}, fmt.Errorf("bulk roster update rolled back: %w", err)
	}
	return outcome, nil
}

// resolveRowID interprets the loosely typed id field of a BulkRow.
// Returns (0, true, nil) when the row should insert. Ids keep their sign and
// fractional numbers truncate; a negative or stale id is not an error here,
// it is an update that matches no row.
func resolveRowID(raw interface{}) (int64, bool, error) {
	switch id := raw.(type) {
	case nil:
		return 0, true, nil
	case string:
		s := strings.TrimSpace(id)
		if s == "" || strings.EqualFold(s, "null") {
			return 0, true, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid id value: %q", id)
		}
		return n, false, nil
	case float64:
		// encoding/json decodes all JSON numbers to float64
		return int64(id), false, nil
	default:
		return 0, false, fmt.Errorf("invalid id value: %v", raw)
	}
}
