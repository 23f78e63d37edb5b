package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// StandingRepository определяет методы для работы с итоговыми таблицами.
// Все мутации выполняются в переданной транзакции атомарными UPDATE
// (gorm.Expr), чтением вне транзакций занимается read path.
type StandingRepository interface {
	// EnsureTeamStanding создает нулевую строку итога команды, если её ещё нет.
	EnsureTeamStanding(tx *gorm.DB, competitionID, teamID uint) error
	// AddTeamChallengeScore атомарно прибавляет очки задания к
	// score_total и score_from_challenges команды.
	AddTeamChallengeScore(tx *gorm.DB, competitionID, teamID uint, score int) error

	EnsureParticipantStanding(tx *gorm.DB, competitionID, userID, teamID uint) error
	AddParticipantChallengeScore(tx *gorm.DB, competitionID, userID uint, score int) error
	// SetParticipantQuizScore выставляет (не прибавляет) итог тестовой
	// части и пересчитывает score_total - пересчёт оценок идемпотентен.
	SetParticipantQuizScore(tx *gorm.DB, competitionID, userID uint, quizScore int) error

	GetTeamStanding(competitionID, teamID uint) (*entity.TeamStanding, error)
	GetParticipantStanding(competitionID, userID uint) (*entity.ParticipantStanding, error)
	ListTeamStandings(competitionID uint, limit, offset int) ([]entity.TeamStanding, int64, error)
}
