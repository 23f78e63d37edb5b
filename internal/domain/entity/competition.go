package entity

import (
	"time"
)

// Статусы соревнования
const (
	CompetitionStatusDraft    = "draft"
	CompetitionStatusActive   = "active"
	CompetitionStatusFinished = "finished"
)

// Competition представляет одно соревнование (CTF-задания + выборка тестовых вопросов)
type Competition struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	Status      string `gorm:"size:20;not null;default:'draft'" json:"status"`
	// QuizQuestionCount - сколько вопросов из общего пула получает каждый участник
	QuizQuestionCount int       `gorm:"not null;default:0" json:"quiz_question_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// TODO: временные рамки соревнования (start/end) не моделируются,
	// проверка "в пределах времени соревнования" остаётся за внешним слоем.
}

// TableName определяет имя таблицы для GORM
func (Competition) TableName() string {
	return "competitions"
}
