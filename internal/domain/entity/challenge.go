package entity

import (
	"strings"
	"time"
)

// Challenge представляет CTF-задание соревнования.
// Score и Flag неизменяемы после создания; SubmitAttempts - счётчик
// успешных сдач (аналитика, не влияет на начисление очков).
type Challenge struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompetitionID uint   `gorm:"not null;index" json:"competition_id"`
	Title         string `gorm:"size:200;not null" json:"title"`
	Category      string `gorm:"size:50" json:"category,omitempty"`
	Flag          string `gorm:"size:255;not null" json:"-"` // Скрыто от клиента
	Score         int    `gorm:"not null" json:"score"`
	SubmitAttempts int64 `gorm:"not null;default:0" json:"submit_attempts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Challenge) TableName() string {
	return "challenges"
}

// CheckFlag сравнивает присланный ответ с флагом задания.
// caseSensitive задаётся конфигурацией (политика сравнения не зашита в код).
func (c *Challenge) CheckFlag(answer string, caseSensitive bool) bool {
	if caseSensitive {
		return answer == c.Flag
	}
	return strings.EqualFold(answer, c.Flag)
}
