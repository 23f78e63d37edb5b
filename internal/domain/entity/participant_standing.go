package entity

import (
	"time"
)

// ParticipantStanding - персональный итог участника, структурно
// параллельный TeamStanding. ScoreFromChallenges наращивается транзакцией
// начисления за сданные лично флаги; ScoreFromQuiz выставляется (не
// прибавляется) агрегатором тестовой части, что делает пересчёт идемпотентным.
type ParticipantStanding struct {
	ID                  uint `gorm:"primaryKey" json:"id"`
	CompetitionID       uint `gorm:"not null;uniqueIndex:idx_standing_user" json:"competition_id"`
	UserID              uint `gorm:"not null;uniqueIndex:idx_standing_user" json:"user_id"`
	TeamID              uint `gorm:"not null;index" json:"team_id"`
	ScoreTotal          int  `gorm:"not null;default:0" json:"score_total"`
	ScoreFromChallenges int  `gorm:"not null;default:0" json:"score_from_challenges"`
	ScoreFromQuiz       int  `gorm:"not null;default:0" json:"score_from_quiz"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (ParticipantStanding) TableName() string {
	return "participant_standings"
}
