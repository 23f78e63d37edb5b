package repository

import (
	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с пулом тестовых вопросов
type QuestionRepository interface {
	Create(question *entity.QuizQuestion) error
	CreateBatch(questions []entity.QuizQuestion) error
	GetByID(id uint) (*entity.QuizQuestion, error)
	GetByIDs(ids []uint) ([]entity.QuizQuestion, error)
	// ListIDs возвращает идентификаторы всего пула - домен для сэмплирования.
	ListIDs() ([]uint, error)
	Count() (int64, error)
}
