package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	"github.com/yourusername/ctf-arena/internal/service/sampling"
)

// AssignmentService выдает участникам персональные наборы вопросов.
// Выдача происходит ровно один раз на (соревнование, участник):
// повторный вызов падает на unique constraint регистрации.
type AssignmentService struct {
	competitionRepo repository.CompetitionRepository
	teamRepo        repository.TeamRepository
	questionRepo    repository.QuestionRepository
	quizRepo        repository.QuizRepository
	sampler         *sampling.Sampler
	txManager       repository.TxManager
}

// NewAssignmentService создает новый сервис выдачи вопросов
func NewAssignmentService(
	competitionRepo repository.CompetitionRepository,
	teamRepo repository.TeamRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	sampler *sampling.Sampler,
	txManager repository.TxManager,
) *AssignmentService {
	return &AssignmentService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		questionRepo:    questionRepo,
		quizRepo:        quizRepo,
		sampler:         sampler,
		txManager:       txManager,
	}
}

// AssignQuestions выдает участнику случайный набор из QuizQuestionCount
// попарно различных вопросов пула и регистрирует его на тестовую часть.
// Вся операция - одна транзакция: регистрация и весь набор либо
// сохраняются целиком, либо не сохраняются вовсе.
// Score и CorrectAnswer снимаются в строки набора на момент выдачи.
func (s *AssignmentService) AssignQuestions(competitionID, teamID, userID uint) (*entity.QuizRegistration, []entity.QuizAssignment, error) {
	competition, err := s.competitionRepo.GetByID(competitionID)
	if err != nil {
		return nil, nil, err
	}

	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, nil, err
	}
	if team.CompetitionID != competitionID {
		return nil, nil, fmt.Errorf("%w: team #%d belongs to another competition", ErrNotTeamMember, teamID)
	}
	if !team.HasMember(userID) {
		return nil, nil, fmt.Errorf("%w: user #%d, team #%d", ErrNotTeamMember, userID, teamID)
	}

	// Домен сэмплирования - идентификаторы всего пула.
	// Каталог вопросов неизменяем, читать его внутри транзакции не требуется.
	poolIDs, err := s.questionRepo.ListIDs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list question pool: %w", err)
	}
	if competition.QuizQuestionCount > len(poolIDs) {
		return nil, nil, fmt.Errorf("%w: need %d, pool has %d",
			ErrInsufficientPool, competition.QuizQuestionCount, len(poolIDs))
	}

	sampledIDs, err := s.sampler.SampleIDs(poolIDs, competition.QuizQuestionCount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sample questions: %w", err)
	}

	questions, err := s.questionRepo.GetByIDs(sampledIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sampled questions: %w", err)
	}
	if len(questions) != len(sampledIDs) {
		return nil, nil, fmt.Errorf("question pool changed during assignment: sampled %d, loaded %d",
			len(sampledIDs), len(questions))
	}

	registration := &entity.QuizRegistration{
		CompetitionID: competitionID,
		TeamID:        teamID,
		UserID:        userID,
	}

	var assignments []entity.QuizAssignment
	err = s.txManager.WithinTransaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.CreateRegistration(tx, registration); err != nil {
			if errors.Is(err, repository.ErrDuplicateRegistration) {
				return fmt.Errorf("%w: competition #%d, user #%d",
					ErrDuplicateAssignment, competitionID, userID)
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		assignments = make([]entity.QuizAssignment, 0, len(questions))
		for _, q := range questions {
			assignments = append(assignments, entity.QuizAssignment{
				RegistrationID: registration.ID,
				CompetitionID:  competitionID,
				TeamID:         teamID,
				UserID:         userID,
				QuestionID:     q.ID,
				CorrectAnswer:  q.CorrectAnswer, // Снимок на момент выдачи
				Score:          q.Score,         // Снимок на момент выдачи
			})
		}

		if err := s.quizRepo.CreateAssignments(tx, assignments); err != nil {
			return fmt.Errorf("failed to create assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[AssignmentService] Выдан набор из %d вопросов: competition #%d, user #%d, registration #%d",
		len(assignments), competitionID, userID, registration.ID)
	return registration, assignments, nil
}

// GetAssignments возвращает регистрацию участника и его набор вопросов
func (s *AssignmentService) GetAssignments(competitionID, userID uint) (*entity.QuizRegistration, []entity.QuizAssignment, error) {
	registration, err := s.quizRepo.GetRegistrationByUser(competitionID, userID)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.quizRepo.GetAssignmentsByRegistration(registration.ID)
	if err != nil {
		return nil, nil, err
	}
	return registration, assignments, nil
}
