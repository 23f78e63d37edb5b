package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// CompetitionRepo реализует repository.CompetitionRepository
type CompetitionRepo struct {
	db *gorm.DB
}

// NewCompetitionRepo создает новый репозиторий соревнований
func NewCompetitionRepo(db *gorm.DB) *CompetitionRepo {
	return &CompetitionRepo{db: db}
}

// Create сохраняет новое соревнование
func (r *CompetitionRepo) Create(competition *entity.Competition) error {
	return r.db.Create(competition).Error
}

// GetByID возвращает соревнование по ID
func (r *CompetitionRepo) GetByID(id uint) (*entity.Competition, error) {
	var competition entity.Competition
	err := r.db.First(&competition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &competition, nil
}

// List возвращает список соревнований с пагинацией
func (r *CompetitionRepo) List(limit, offset int) ([]entity.Competition, error) {
	var competitions []entity.Competition
	err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&competitions).Error
	return competitions, err
}
