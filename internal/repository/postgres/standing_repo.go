package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// StandingRepo реализует repository.StandingRepository
type StandingRepo struct {
	db *gorm.DB
}

// NewStandingRepo создает новый репозиторий итоговых таблиц
func NewStandingRepo(db *gorm.DB) *StandingRepo {
	return &StandingRepo{db: db}
}

// EnsureTeamStanding создает нулевую строку итога команды, если её ещё нет.
// ON CONFLICT DO NOTHING: конкурентные транзакции начисления не падают
// на гонке за первую вставку.
func (r *StandingRepo) EnsureTeamStanding(tx *gorm.DB, competitionID, teamID uint) error {
	standing := entity.TeamStanding{
		CompetitionID: competitionID,
		TeamID:        teamID,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&standing).Error
}

// AddTeamChallengeScore атомарно прибавляет очки задания к итогу команды.
// Одиночный UPDATE с выражением: строка блокируется на время транзакции,
// конкурентные начисления одной команды сериализуются на ней.
func (r *StandingRepo) AddTeamChallengeScore(tx *gorm.DB, competitionID, teamID uint, score int) error {
	return tx.Model(&entity.TeamStanding{}).
		Where("competition_id = ? AND team_id = ?", competitionID, teamID).
		Updates(map[string]interface{}{
			"score_total":           gorm.Expr("score_total + ?", score),
			"score_from_challenges": gorm.Expr("score_from_challenges + ?", score),
		}).Error
}

// EnsureParticipantStanding создает нулевую строку итога участника, если её ещё нет
func (r *StandingRepo) EnsureParticipantStanding(tx *gorm.DB, competitionID, userID, teamID uint) error {
	standing := entity.ParticipantStanding{
		CompetitionID: competitionID,
		UserID:        userID,
		TeamID:        teamID,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&standing).Error
}

// AddParticipantChallengeScore атомарно прибавляет очки задания к личному итогу
func (r *StandingRepo) AddParticipantChallengeScore(tx *gorm.DB, competitionID, userID uint, score int) error {
	return tx.Model(&entity.ParticipantStanding{}).
		Where("competition_id = ? AND user_id = ?", competitionID, userID).
		Updates(map[string]interface{}{
			"score_total":           gorm.Expr("score_total + ?", score),
			"score_from_challenges": gorm.Expr("score_from_challenges + ?", score),
		}).Error
}

// SetParticipantQuizScore выставляет итог тестовой части и пересчитывает
// score_total от компонент. Присваивание вместо инкремента делает
// повторный пересчёт оценок идемпотентным.
func (r *StandingRepo) SetParticipantQuizScore(tx *gorm.DB, competitionID, userID uint, quizScore int) error {
	return tx.Model(&entity.ParticipantStanding{}).
		Where("competition_id = ? AND user_id = ?", competitionID, userID).
		Updates(map[string]interface{}{
			"score_from_quiz": quizScore,
			"score_total":     gorm.Expr("score_from_challenges + ?", quizScore),
		}).Error
}

// GetTeamStanding возвращает итог команды в соревновании
func (r *StandingRepo) GetTeamStanding(competitionID, teamID uint) (*entity.TeamStanding, error) {
	var standing entity.TeamStanding
	err := r.db.Where("competition_id = ? AND team_id = ?", competitionID, teamID).
		First(&standing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &standing, nil
}

// GetParticipantStanding возвращает личный итог участника
func (r *StandingRepo) GetParticipantStanding(competitionID, userID uint) (*entity.ParticipantStanding, error) {
	var standing entity.ParticipantStanding
	err := r.db.Where("competition_id = ? AND user_id = ?", competitionID, userID).
		First(&standing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &standing, nil
}

// ListTeamStandings возвращает страницу таблицы команд, отсортированную по
// очкам. Подсчёт и выборка - два отдельных запроса: между ними таблица может
// измениться, для пагинации таблицы лидеров это допустимо.
func (r *StandingRepo) ListTeamStandings(competitionID uint, limit, offset int) ([]entity.TeamStanding, int64, error) {
	var standings []entity.TeamStanding
	var total int64

	if err := r.db.Model(&entity.TeamStanding{}).
		Where("competition_id = ?", competitionID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("competition_id = ?", competitionID).
		Order("score_total DESC, updated_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&standings).Error
	if err != nil {
		return nil, 0, err
	}

	return standings, total, nil
}
