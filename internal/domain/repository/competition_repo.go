package repository

import (
	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// CompetitionRepository определяет методы для работы с соревнованиями
type CompetitionRepository interface {
	Create(competition *entity.Competition) error
	GetByID(id uint) (*entity.Competition, error)
	List(limit, offset int) ([]entity.Competition, error)
}
