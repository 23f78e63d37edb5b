package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// ChallengeRepository определяет методы для работы с CTF-заданиями
type ChallengeRepository interface {
	Create(challenge *entity.Challenge) error
	GetByID(id uint) (*entity.Challenge, error)
	ListByCompetition(competitionID uint) ([]entity.Challenge, error)
	// IncrementSubmitAttempts атомарно увеличивает счётчик успешных сдач.
	// Выполняется в переданной транзакции начисления.
	IncrementSubmitAttempts(tx *gorm.DB, challengeID uint) error
}
