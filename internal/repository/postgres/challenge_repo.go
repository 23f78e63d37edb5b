package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// ChallengeRepo реализует repository.ChallengeRepository
type ChallengeRepo struct {
	db *gorm.DB
}

// NewChallengeRepo создает новый репозиторий CTF-заданий
func NewChallengeRepo(db *gorm.DB) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

// Create сохраняет новое задание
func (r *ChallengeRepo) Create(challenge *entity.Challenge) error {
	return r.db.Create(challenge).Error
}

// GetByID возвращает задание по ID
func (r *ChallengeRepo) GetByID(id uint) (*entity.Challenge, error) {
	var challenge entity.Challenge
	err := r.db.First(&challenge, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// ListByCompetition возвращает задания соревнования
func (r *ChallengeRepo) ListByCompetition(competitionID uint) ([]entity.Challenge, error) {
	var challenges []entity.Challenge
	err := r.db.Where("competition_id = ?", competitionID).Order("id").Find(&challenges).Error
	return challenges, err
}

// IncrementSubmitAttempts атомарно увеличивает счётчик успешных сдач
// в переданной транзакции. Счётчик монотонный и растёт на каждую верную
// сдачу, в том числе повторную (инвариант "один раз на команду" относится
// только к очкам).
func (r *ChallengeRepo) IncrementSubmitAttempts(tx *gorm.DB, challengeID uint) error {
	return tx.Model(&entity.Challenge{}).
		Where("id = ?", challengeID).
		UpdateColumn("submit_attempts", gorm.Expr("submit_attempts + ?", 1)).
		Error
}
