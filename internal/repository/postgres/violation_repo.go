package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// ViolationRepo реализует repository.ViolationRepository.
// Только чтение: записи о нарушениях создаются инструментами модерации.
type ViolationRepo struct {
	db *gorm.DB
}

// NewViolationRepo создает новый репозиторий нарушений
func NewViolationRepo(db *gorm.DB) *ViolationRepo {
	return &ViolationRepo{db: db}
}

// GetByID возвращает запись о нарушении по ID
func (r *ViolationRepo) GetByID(id uint) (*entity.ViolationRecord, error) {
	var violation entity.ViolationRecord
	err := r.db.First(&violation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &violation, nil
}

// ListByCompetition возвращает нарушения соревнования с пагинацией
func (r *ViolationRepo) ListByCompetition(competitionID uint, limit, offset int) ([]entity.ViolationRecord, int64, error) {
	var violations []entity.ViolationRecord
	var total int64

	if err := r.db.Model(&entity.ViolationRecord{}).
		Where("competition_id = ?", competitionID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("competition_id = ?", competitionID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&violations).Error
	if err != nil {
		return nil, 0, err
	}

	return violations, total, nil
}
