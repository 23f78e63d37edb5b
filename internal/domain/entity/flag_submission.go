package entity

import (
	"time"
)

// FlagSubmissionAttempt - append-only журнал всех попыток сдачи флага.
// Запись создаётся при каждой попытке (верной и неверной), никогда не
// изменяется и не удаляется: журнал служит аудиту анти-чита и живёт
// независимо от успеха начисления очков.
type FlagSubmissionAttempt struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AttemptUID    string `gorm:"size:36;not null;uniqueIndex" json:"attempt_uid"` // Публичная ссылка (uuid)
	CompetitionID uint   `gorm:"not null;index" json:"competition_id"`
	ChallengeID   uint   `gorm:"not null;index" json:"challenge_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	Answer        string `gorm:"size:255;not null" json:"-"` // Присланный текст не возвращается клиентам
	Correct       bool   `gorm:"not null" json:"correct"`    // Вычисляется один раз при создании

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (FlagSubmissionAttempt) TableName() string {
	return "flag_submission_attempts"
}
