package repository

import (
	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// TeamRepository определяет методы для работы с командами
type TeamRepository interface {
	Create(team *entity.Team) error
	GetByID(id uint) (*entity.Team, error)
	// GetByMember находит команду соревнования, в которой пользователь
	// состоит капитаном или одним из участников.
	GetByMember(competitionID, userID uint) (*entity.Team, error)
	ListByCompetition(competitionID uint) ([]entity.Team, error)
}
