package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий тестовой части
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateRegistration создает регистрацию участника в переданной транзакции.
// Unique index idx_registration_user гарантирует max 1 регистрацию на
// (competition_id, user_id):
// - 23505 (unique violation) → ErrDuplicateRegistration
// - Другая DB ошибка → возвращается как есть
func (r *QuizRepo) CreateRegistration(tx *gorm.DB, registration *entity.QuizRegistration) error {
	if err := tx.Create(registration).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: competition #%d, user #%d",
				repository.ErrDuplicateRegistration, registration.CompetitionID, registration.UserID)
		}
		return err
	}
	return nil
}

// GetRegistrationByID возвращает регистрацию по ID
func (r *QuizRepo) GetRegistrationByID(id uint) (*entity.QuizRegistration, error) {
	var registration entity.QuizRegistration
	err := r.db.First(&registration, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// GetRegistrationByUser возвращает регистрацию участника в соревновании
func (r *QuizRepo) GetRegistrationByUser(competitionID, userID uint) (*entity.QuizRegistration, error) {
	var registration entity.QuizRegistration
	err := r.db.Where("competition_id = ? AND user_id = ?", competitionID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// CreateAssignments пакетно сохраняет персональный набор вопросов
// в переданной транзакции - либо весь набор, либо ничего.
func (r *QuizRepo) CreateAssignments(tx *gorm.DB, assignments []entity.QuizAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return tx.Create(&assignments).Error
}

// GetAssignmentsByRegistration возвращает набор вопросов участника
func (r *QuizRepo) GetAssignmentsByRegistration(registrationID uint) ([]entity.QuizAssignment, error) {
	var assignments []entity.QuizAssignment
	err := r.db.Where("registration_id = ?", registrationID).
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

// LockAssignmentsByRegistration читает набор участника с блокировкой строк
// (SELECT ... FOR UPDATE). Конкурентные пересчёты одной регистрации
// сериализуются на этих строках.
func (r *QuizRepo) LockAssignmentsByRegistration(tx *gorm.DB, registrationID uint) ([]entity.QuizAssignment, error) {
	var assignments []entity.QuizAssignment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("registration_id = ?", registrationID).
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

// UpdateAssignmentGrade сохраняет ответ и признак правильности.
// Точечный Updates вместо Save: снимки score/correct_answer неизменяемы.
func (r *QuizRepo) UpdateAssignmentGrade(tx *gorm.DB, assignment *entity.QuizAssignment) error {
	return tx.Model(&entity.QuizAssignment{}).
		Where("id = ?", assignment.ID).
		Updates(map[string]interface{}{
			"submitted_answer": assignment.SubmittedAnswer,
			"correct":          assignment.Correct,
		}).Error
}

// UpdateRegistrationTotal сохраняет свёрнутый итог тестовой части
func (r *QuizRepo) UpdateRegistrationTotal(tx *gorm.DB, registrationID uint, total int) error {
	return tx.Model(&entity.QuizRegistration{}).
		Where("id = ?", registrationID).
		Update("total_quiz_score", total).Error
}
