package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// SubmissionRepository определяет методы для работы с журналом попыток
// и отметками о засчитанных решениях.
type SubmissionRepository interface {
	// CreateAttempt добавляет запись в append-only журнал попыток.
	// Выполняется вне транзакции начисления: журнал переживает её откат.
	CreateAttempt(attempt *entity.FlagSubmissionAttempt) error
	GetAttemptByUID(attemptUID string) (*entity.FlagSubmissionAttempt, error)
	ListAttemptsByChallenge(challengeID uint, limit, offset int) ([]entity.FlagSubmissionAttempt, int64, error)

	// CreateSolve вставляет отметку о засчитанном решении; при нарушении
	// уникальности (competition_id, team_id, challenge_id) возвращает
	// ErrAlreadySolved. Вызывается только внутри транзакции начисления.
	CreateSolve(tx *gorm.DB, solve *entity.ChallengeSolve) error
	SolveExists(competitionID, teamID, challengeID uint) (bool, error)
	ListSolvesByTeam(competitionID, teamID uint) ([]entity.ChallengeSolve, error)
}
