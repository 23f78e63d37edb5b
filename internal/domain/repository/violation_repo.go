package repository

import (
	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// ViolationRepository определяет методы чтения записей о нарушениях.
// Записи создаются инструментами модерации вне этого сервиса.
type ViolationRepository interface {
	GetByID(id uint) (*entity.ViolationRecord, error)
	ListByCompetition(competitionID uint, limit, offset int) ([]entity.ViolationRecord, int64, error)
}
