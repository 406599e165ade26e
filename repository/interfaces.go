package repository

import (
	"github.com/camden-git/presenceboard/models"
)

// StatusRepositoryInterface defines the methods for status data operations
type StatusRepositoryInterface interface {
	Exists(personID uint) (bool, error)
	SetStatus(personID uint, status int, timestamp string) (*int, error)
	ListView() ([]ViewRow, error)
}

// PersonRepositoryInterface defines the methods for roster data operations
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	ListAll() ([]models.Person, error)
	Delete(id uint) error
	ApplyBulk(rows []BulkRow) (BatchOutcome, error)
}
