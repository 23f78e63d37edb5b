package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// TeamRepo реализует repository.TeamRepository
type TeamRepo struct {
	db *gorm.DB
}

// NewTeamRepo создает новый репозиторий команд
func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// Create сохраняет новую команду
func (r *TeamRepo) Create(team *entity.Team) error {
	return r.db.Create(team).Error
}

// GetByID возвращает команду по ID
func (r *TeamRepo) GetByID(id uint) (*entity.Team, error) {
	var team entity.Team
	err := r.db.First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByMember находит команду соревнования по любому из четырёх слотов
// состава (капитан или участник) - как в исходной системе, где членство
// хранится в фиксированных полях TeamProfile.
func (r *TeamRepo) GetByMember(competitionID, userID uint) (*entity.Team, error) {
	var team entity.Team
	err := r.db.
		Where("competition_id = ?", competitionID).
		Where("captain_id = ? OR member1_id = ? OR member2_id = ? OR member3_id = ?",
			userID, userID, userID, userID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListByCompetition возвращает все команды соревнования
func (r *TeamRepo) ListByCompetition(competitionID uint) ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.Where("competition_id = ?", competitionID).Order("id").Find(&teams).Error
	return teams, err
}
