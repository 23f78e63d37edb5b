package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// QuizRepository определяет методы для работы с регистрациями на тестовую
// часть и персональными наборами вопросов.
// Методы, принимающие tx, выполняются в транзакции вызывающего сервиса:
// выдача набора и пересчёт оценок - атомарные операции целиком.
type QuizRepository interface {
	// CreateRegistration создает регистрацию; при нарушении уникальности
	// (competition_id, user_id) возвращает ErrDuplicateRegistration.
	CreateRegistration(tx *gorm.DB, registration *entity.QuizRegistration) error
	GetRegistrationByID(id uint) (*entity.QuizRegistration, error)
	GetRegistrationByUser(competitionID, userID uint) (*entity.QuizRegistration, error)

	CreateAssignments(tx *gorm.DB, assignments []entity.QuizAssignment) error
	GetAssignmentsByRegistration(registrationID uint) ([]entity.QuizAssignment, error)
	// LockAssignmentsByRegistration читает набор участника с блокировкой
	// строк (FOR UPDATE) для пересчёта оценок.
	LockAssignmentsByRegistration(tx *gorm.DB, registrationID uint) ([]entity.QuizAssignment, error)
	// UpdateAssignmentGrade сохраняет ответ и пересчитанный признак
	// правильности; снимки score/correct_answer не трогаются.
	UpdateAssignmentGrade(tx *gorm.DB, assignment *entity.QuizAssignment) error
	UpdateRegistrationTotal(tx *gorm.DB, registrationID uint, total int) error
}
