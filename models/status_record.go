package models

// StatusRecord holds the latest known presence status for one person.
// A row exists only once a valid report has been applied; absence of a
// row means "never reported", not "absent".
type StatusRecord struct {
	PersonID  uint   `gorm:"primaryKey" json:"person_id"`
	Status    int    `gorm:"not null" json:"status"` // 0 = absent, 1 = present
	Timestamp string `gorm:"not null" json:"timestamp"`
}

// TableName explicitly sets the table name for GORM.
func (StatusRecord) TableName() string {
	return "status"
}
