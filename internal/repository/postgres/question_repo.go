package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий пула вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create сохраняет новый вопрос в пул
func (r *QuestionRepo) Create(question *entity.QuizQuestion) error {
	return r.db.Create(question).Error
}

// CreateBatch сохраняет несколько вопросов за один запрос
func (r *QuestionRepo) CreateBatch(questions []entity.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.QuizQuestion, error) {
	var question entity.QuizQuestion
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByIDs возвращает вопросы по списку идентификаторов
func (r *QuestionRepo) GetByIDs(ids []uint) ([]entity.QuizQuestion, error) {
	if len(ids) == 0 {
		return []entity.QuizQuestion{}, nil
	}
	var questions []entity.QuizQuestion
	err := r.db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// ListIDs возвращает идентификаторы всего пула.
// Домен для сэмплирования: частичный Fisher-Yates работает по этому
// списку, а не по предположению о непрерывности ID.
func (r *QuestionRepo) ListIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.QuizQuestion{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// Count возвращает размер пула вопросов
func (r *QuestionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizQuestion{}).Count(&count).Error
	return count, err
}
