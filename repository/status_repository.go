package repository

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/presenceboard/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ViewRow is one row of the public status view: a person joined with their
// latest status. Status and Timestamp are nil for people who never reported.
type ViewRow struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Grade      string  `json:"grade"`
	Role       string  `json:"role"`
	Room       string  `json:"room"`
	Status     *int    `json:"status"`
	Timestamp  *string `json:"timestamp"`
}

// StatusRepository handles database operations for StatusRecord entities
type StatusRepository struct {
	DB *gorm.DB
}

// NewStatusRepository creates a new instance of StatusRepository
func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{DB: db}
}

// Exists reports whether a person with the given id is on the roster.
func (r *StatusRepository) Exists(personID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Person{}).Where("id = ?", personID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existence of person %d: %w", personID, err)
	}
	return count > 0, nil
}

// SetStatus applies a conditional status write in a single transaction and
// returns the prior status, or nil when no record existed (first report).
//
// When the stored status equals the submitted one the row is left untouched,
// timestamp included, so repeated identical reports cause no writes and give
// the caller enough to tell "no change" from "changed" from "first report".
func (r *StatusRepository) SetStatus(personID uint, status int, timestamp string) (*int, error) {
	var oldStatus *int

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var record models.StatusRecord
		err := tx.Where("person_id = ?", personID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.StatusRecord{
				PersonID:  personID,
				Status:    status,
				Timestamp: timestamp,
			}).Error
		}
		if err != nil {
			return err
		}

		old := record.Status
		oldStatus = &old
		if old == status {
			return nil
		}
		return tx.Model(&models.StatusRecord{}).
			Where("person_id = ?", personID).
			Updates(map[string]interface{}{"status": status, "timestamp": timestamp}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set status for person %d: %w", personID, err)
	}
	return oldStatus, nil
}

// ListView returns every person left-joined with their status record,
// ordered by department, room, name with empty strings sorting like NULL.
func (r *StatusRepository) ListView() ([]ViewRow, error) {
	queryBuilder := psql.Select(
		"p.id", "p.name", "p.department", "p.grade", "p.role", "p.room",
		"s.status", "s.timestamp").
		From("people p").
		LeftJoin("status s ON p.id = s.person_id").
		OrderBy("COALESCE(p.department, '')", "COALESCE(p.room, '')", "COALESCE(p.name, '')")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for ListView: %w", err)
	}

	var rows []ViewRow
	if err := r.DB.Raw(sqlStr, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status view: %w", err)
	}
	if rows == nil {
		rows = []ViewRow{}
	}
	return rows, nil
}
