package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	"github.com/yourusername/ctf-arena/internal/metrics"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// GradingService пересчитывает оценки тестовой части участника.
// Пересчёт идемпотентен: повторный вызов с теми же ответами дает тот же
// итог и те же признаки правильности. Строки набора блокируются FOR UPDATE,
// конкурентные пересчёты одной регистрации сериализуются.
type GradingService struct {
	quizRepo     repository.QuizRepository
	standingRepo repository.StandingRepository
	cacheRepo    repository.CacheRepository
	txManager    repository.TxManager
}

// NewGradingService создает новый сервис пересчёта оценок
func NewGradingService(
	quizRepo repository.QuizRepository,
	standingRepo repository.StandingRepository,
	cacheRepo repository.CacheRepository,
	txManager repository.TxManager,
) *GradingService {
	return &GradingService{
		quizRepo:     quizRepo,
		standingRepo: standingRepo,
		cacheRepo:    cacheRepo,
		txManager:    txManager,
	}
}

// RegradeAndScore применяет присланные ответы и заново оценивает весь набор
// участника: каждый вопрос сверяется со снимком correct_answer, сумма очков
// верных ответов сворачивается в total_quiz_score регистрации и в личный
// итог участника. Одна транзакция на все обновления: конкурентный читатель
// не увидит итог, не согласованный с набором.
//
// answers - отображение assignmentID → ответ; вопросы вне отображения
// сохраняют прежний ответ и просто переоцениваются.
func (s *GradingService) RegradeAndScore(registrationID uint, answers map[uint]string) (int, error) {
	registration, err := s.quizRepo.GetRegistrationByID(registrationID)
	if err != nil {
		return 0, err
	}

	var total int
	err = s.txManager.WithinTransaction(func(tx *gorm.DB) error {
		assignments, err := s.quizRepo.LockAssignmentsByRegistration(tx, registrationID)
		if err != nil {
			return fmt.Errorf("failed to lock assignments: %w", err)
		}

		total, err = regradeAssignments(assignments, answers)
		if err != nil {
			return fmt.Errorf("%w (registration #%d)", err, registrationID)
		}

		for i := range assignments {
			if err := s.quizRepo.UpdateAssignmentGrade(tx, &assignments[i]); err != nil {
				return fmt.Errorf("failed to update assignment #%d: %w", assignments[i].ID, err)
			}
		}

		if err := s.quizRepo.UpdateRegistrationTotal(tx, registrationID, total); err != nil {
			return fmt.Errorf("failed to update registration total: %w", err)
		}

		// Личный итог: выставление, не инкремент - пересчёт идемпотентен
		if err := s.standingRepo.EnsureParticipantStanding(tx, registration.CompetitionID, registration.UserID, registration.TeamID); err != nil {
			return fmt.Errorf("failed to ensure participant standing: %w", err)
		}
		if err := s.standingRepo.SetParticipantQuizScore(tx, registration.CompetitionID, registration.UserID, total); err != nil {
			return fmt.Errorf("failed to set participant quiz score: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.QuizRegrades.Inc()
	s.invalidateStandingCache(registration.CompetitionID, registration.UserID)

	log.Printf("[GradingService] Пересчитан итог тестовой части: registration #%d, total %d", registrationID, total)
	return total, nil
}

// regradeAssignments применяет присланные ответы к набору и заново
// оценивает каждый вопрос по снимку correct_answer. Возвращает сумму очков
// верных ответов. Повторный вызов с теми же ответами дает тот же результат.
func regradeAssignments(assignments []entity.QuizAssignment, answers map[uint]string) (int, error) {
	// Ответ принимается только на вопрос из набора этой регистрации
	known := make(map[uint]bool, len(assignments))
	for i := range assignments {
		known[assignments[i].ID] = true
	}
	for assignmentID := range answers {
		if !known[assignmentID] {
			return 0, fmt.Errorf("%w: assignment #%d does not belong to registration",
				apperrors.ErrValidation, assignmentID)
		}
	}

	total := 0
	for i := range assignments {
		a := &assignments[i]
		if answer, ok := answers[a.ID]; ok {
			a.SubmittedAnswer = &answer
		}
		a.Grade()
		if a.Correct {
			total += a.Score
		}
	}
	return total, nil
}

// invalidateStandingCache сбрасывает кешированный личный итог после коммита
func (s *GradingService) invalidateStandingCache(competitionID, userID uint) {
	if s.cacheRepo == nil {
		return
	}
	key := fmt.Sprintf("standings:participant:%d:%d", competitionID, userID)
	if err := s.cacheRepo.Delete(key); err != nil {
		// Кеш с TTL, устаревание не критично
		log.Printf("[GradingService] Warning: failed to invalidate cache %s: %v", key, err)
	}
}
