package entity

import (
	"time"
)

// QuizAssignment представляет персональный экземпляр вопроса, выданный
// участнику при регистрации на тестовую часть соревнования.
// CorrectAnswer и Score - снимки из QuizQuestion на момент выдачи:
// последующие правки каталога не меняют оценивание уже выданных вопросов.
// Строки создаются один раз пакетно и никогда не пересэмплируются,
// но могут переоцениваться (пересчёт Correct по текущему ответу).
type QuizAssignment struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	RegistrationID uint    `gorm:"not null;index;uniqueIndex:idx_assignment_question" json:"registration_id"`
	CompetitionID  uint    `gorm:"not null;index" json:"competition_id"`
	TeamID         uint    `gorm:"not null;index" json:"team_id"`
	UserID         uint    `gorm:"not null;index" json:"user_id"`
	QuestionID     uint    `gorm:"not null;uniqueIndex:idx_assignment_question" json:"question_id"`
	SubmittedAnswer *string `gorm:"size:255" json:"submitted_answer,omitempty"` // NULL до первого ответа
	Correct        bool    `gorm:"not null;default:false" json:"correct"`
	CorrectAnswer  string  `gorm:"size:255;not null" json:"-"` // Снимок, скрыт от клиента
	Score          int     `gorm:"not null" json:"score"`      // Снимок, неизменяем

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAssignment) TableName() string {
	return "quiz_assignments"
}

// Grade пересчитывает признак правильности по текущему ответу.
// Без ответа вопрос считается неправильным.
func (a *QuizAssignment) Grade() bool {
	a.Correct = a.SubmittedAnswer != nil && *a.SubmittedAnswer == a.CorrectAnswer
	return a.Correct
}

// Answered проверяет, дан ли ответ на вопрос
func (a *QuizAssignment) Answered() bool {
	return a.SubmittedAnswer != nil
}
