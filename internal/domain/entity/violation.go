package entity

import (
	"time"
)

// ViolationRecord - запись о нарушении правил соревнования.
// Создаётся инструментами модерации вне этого сервиса; здесь только чтение.
type ViolationRecord struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompetitionID uint   `gorm:"not null;index" json:"competition_id"`
	TeamID        uint   `gorm:"not null;index" json:"team_id"`
	UserID        *uint  `gorm:"index" json:"user_id,omitempty"`
	Reason        string `gorm:"size:500;not null" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ViolationRecord) TableName() string {
	return "violation_records"
}
