package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// SubmissionRepo реализует repository.SubmissionRepository
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo создает новый репозиторий попыток сдачи
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// CreateAttempt добавляет запись в журнал попыток.
// Журнал append-only: записи не изменяются и не удаляются.
func (r *SubmissionRepo) CreateAttempt(attempt *entity.FlagSubmissionAttempt) error {
	return r.db.Create(attempt).Error
}

// GetAttemptByUID возвращает попытку по публичному идентификатору
func (r *SubmissionRepo) GetAttemptByUID(attemptUID string) (*entity.FlagSubmissionAttempt, error) {
	var attempt entity.FlagSubmissionAttempt
	err := r.db.Where("attempt_uid = ?", attemptUID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// ListAttemptsByChallenge возвращает попытки по заданию с пагинацией
func (r *SubmissionRepo) ListAttemptsByChallenge(challengeID uint, limit, offset int) ([]entity.FlagSubmissionAttempt, int64, error) {
	var attempts []entity.FlagSubmissionAttempt
	var total int64

	if err := r.db.Model(&entity.FlagSubmissionAttempt{}).
		Where("challenge_id = ?", challengeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("challenge_id = ?", challengeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

// CreateSolve вставляет отметку о засчитанном решении в переданной транзакции.
// Unique index idx_solve_once_per_team - структурная гарантия инварианта
// "флаг засчитывается команде не более одного раза".
//
// Вставка идет через ON CONFLICT DO NOTHING: ошибка unique violation
// перевела бы всю транзакцию Postgres в aborted-состояние, и последующие
// шаги начисления (инкремент submit_attempts) падали бы с 25P02.
// Дубликат распознается по RowsAffected == 0 → ErrAlreadySolved,
// транзакция при этом остается рабочей.
func (r *SubmissionRepo) CreateSolve(tx *gorm.DB, solve *entity.ChallengeSolve) error {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "team_id"}, {Name: "challenge_id"}},
		DoNothing: true,
	}).Create(solve)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: team #%d, challenge #%d",
			repository.ErrAlreadySolved, solve.TeamID, solve.ChallengeID)
	}
	return nil
}

// SolveExists проверяет, засчитано ли задание команде
func (r *SubmissionRepo) SolveExists(competitionID, teamID, challengeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.ChallengeSolve{}).
		Where("competition_id = ? AND team_id = ? AND challenge_id = ?", competitionID, teamID, challengeID).
		Count(&count).Error
	return count > 0, err
}

// ListSolvesByTeam возвращает все засчитанные решения команды
func (r *SubmissionRepo) ListSolvesByTeam(competitionID, teamID uint) ([]entity.ChallengeSolve, error) {
	var solves []entity.ChallengeSolve
	err := r.db.Where("competition_id = ? AND team_id = ?", competitionID, teamID).
		Order("created_at ASC").
		Find(&solves).Error
	if err != nil {
		return nil, err
	}
	return solves, nil
}
