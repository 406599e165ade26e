package models

// Person represents one roster entry in the 'people' table.
// All descriptive fields are optional free text; ordering in listings
// treats empty strings the same as NULL.
type Person struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Role       string `json:"role"`
	Room       string `json:"room"`

	// Relationships
	// deleting a person removes its status record as well
	Status *StatusRecord `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"status,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}
