package entity

import (
	"time"
)

// QuizRegistration отмечает, что участнику уже выдан персональный набор
// вопросов, и хранит свёрнутый итог тестовой части.
// Уникальный индекс (competition_id, user_id) - защита от повторной выдачи:
// второй вызов AssignQuestions для того же участника падает на constraint.
type QuizRegistration struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	CompetitionID uint `gorm:"not null;index;uniqueIndex:idx_registration_user" json:"competition_id"`
	TeamID        uint `gorm:"not null;index" json:"team_id"`
	UserID        uint `gorm:"not null;uniqueIndex:idx_registration_user" json:"user_id"`
	TotalQuizScore int `gorm:"not null;default:0" json:"total_quiz_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizRegistration) TableName() string {
	return "quiz_registrations"
}
