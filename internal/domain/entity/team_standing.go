package entity

import (
	"time"
)

// TeamStanding - накопительный итог команды в соревновании.
// Изменяется только транзакцией начисления за флаги; вне транзакций
// строка не модифицируется (никаких read-modify-write на стороне приложения).
type TeamStanding struct {
	ID                  uint `gorm:"primaryKey" json:"id"`
	CompetitionID       uint `gorm:"not null;uniqueIndex:idx_standing_team" json:"competition_id"`
	TeamID              uint `gorm:"not null;uniqueIndex:idx_standing_team" json:"team_id"`
	ScoreTotal          int  `gorm:"not null;default:0" json:"score_total"`
	ScoreFromChallenges int  `gorm:"not null;default:0" json:"score_from_challenges"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (TeamStanding) TableName() string {
	return "team_standings"
}
