package entity

import (
	"time"
)

// ChallengeSolve фиксирует, что задание уже засчитано команде.
// Уникальный индекс (competition_id, team_id, challenge_id) делает
// инвариант "флаг засчитывается команде не более одного раза"
// структурным: транзакция начисления вставляет эту строку до инкремента
// очков, и повторная верная сдача любым участником команды падает на
// constraint вместо повторного начисления.
type ChallengeSolve struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	CompetitionID uint `gorm:"not null;uniqueIndex:idx_solve_once_per_team" json:"competition_id"`
	TeamID        uint `gorm:"not null;uniqueIndex:idx_solve_once_per_team" json:"team_id"`
	ChallengeID   uint `gorm:"not null;uniqueIndex:idx_solve_once_per_team" json:"challenge_id"`
	AttemptID     uint `gorm:"not null;index" json:"attempt_id"` // Попытка, которой засчитано решение
	UserID        uint `gorm:"not null" json:"user_id"`          // Кто первым сдал флаг

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ChallengeSolve) TableName() string {
	return "challenge_solves"
}
