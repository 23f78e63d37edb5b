package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	"github.com/yourusername/ctf-arena/internal/metrics"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// StandingsNotifier получает уведомления об изменении итогов.
// Реализуется realtime-фидом; nil допустим (уведомления отключены).
type StandingsNotifier interface {
	NotifySolve(competitionID, teamID, challengeID uint, score int)
}

// SubmissionService ведет журнал попыток сдачи флагов и начисляет очки.
//
// Журнал append-only и живет отдельно от начисления: запись о попытке
// сохраняется всегда, даже если транзакция начисления упала. Инвариант
// "флаг засчитывается команде не более одного раза" обеспечивает строка
// ChallengeSolve с уникальным ограничением, вставляемая внутри транзакции
// начисления до инкрементов очков.
type SubmissionService struct {
	challengeRepo  repository.ChallengeRepository
	teamRepo       repository.TeamRepository
	submissionRepo repository.SubmissionRepository
	standingRepo   repository.StandingRepository
	cacheRepo      repository.CacheRepository
	notifier       StandingsNotifier
	txManager      repository.TxManager
	// flagCaseSensitive - политика сравнения флагов (из конфигурации)
	flagCaseSensitive bool
}

// NewSubmissionService создает новый сервис сдачи флагов
func NewSubmissionService(
	challengeRepo repository.ChallengeRepository,
	teamRepo repository.TeamRepository,
	submissionRepo repository.SubmissionRepository,
	standingRepo repository.StandingRepository,
	cacheRepo repository.CacheRepository,
	notifier StandingsNotifier,
	txManager repository.TxManager,
	flagCaseSensitive bool,
) *SubmissionService {
	return &SubmissionService{
		challengeRepo:     challengeRepo,
		teamRepo:          teamRepo,
		submissionRepo:    submissionRepo,
		standingRepo:      standingRepo,
		cacheRepo:         cacheRepo,
		notifier:          notifier,
		txManager:         txManager,
		flagCaseSensitive: flagCaseSensitive,
	}
}

// SubmitFlag записывает попытку сдачи флага и, если ответ верный,
// синхронно запускает транзакцию начисления очков.
//
// Запись о попытке создается всегда (верная и неверная) и не зависит от
// исхода начисления. Если начисление упало, попытка уже сохранена, а
// вызывающий получает ErrPropagationFailed - шаг начисления можно
// идемпотентно повторить через RetryPropagation.
func (s *SubmissionService) SubmitFlag(competitionID, challengeID, userID uint, answer string) (*entity.FlagSubmissionAttempt, error) {
	challenge, err := s.challengeRepo.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.CompetitionID != competitionID {
		return nil, fmt.Errorf("%w: challenge #%d belongs to another competition",
			apperrors.ErrValidation, challengeID)
	}

	// Команда нужна и для начисления, и для проверки участия:
	// попытка без членства в команде соревнования не принимается.
	team, err := s.teamRepo.GetByMember(competitionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user #%d, competition #%d", ErrNotTeamMember, userID, competitionID)
		}
		return nil, err
	}

	correct := challenge.CheckFlag(answer, s.flagCaseSensitive)

	attempt := &entity.FlagSubmissionAttempt{
		AttemptUID:    uuid.New().String(),
		CompetitionID: competitionID,
		ChallengeID:   challengeID,
		UserID:        userID,
		Answer:        answer,
		Correct:       correct,
	}
	if err := s.submissionRepo.CreateAttempt(attempt); err != nil {
		return nil, fmt.Errorf("failed to record submission attempt: %w", err)
	}

	metrics.FlagSubmissions.WithLabelValues(boolLabel(correct)).Inc()

	if !correct {
		return attempt, nil
	}

	if err := s.propagate(attempt, team, challenge, true); err != nil {
		metrics.PropagationFailures.Inc()
		log.Printf("[SubmissionService] Начисление не завершилось: attempt %s: %v", attempt.AttemptUID, err)
		return attempt, fmt.Errorf("%w: attempt %s: %v", ErrPropagationFailed, attempt.AttemptUID, err)
	}

	return attempt, nil
}

// RetryPropagation идемпотентно повторяет только шаг начисления для уже
// записанной верной попытки - путь восстановления после ErrPropagationFailed.
// Строка-отметка ChallengeSolve гарантирует, что очки не начислятся
// повторно, если предыдущий запуск на самом деле успел закоммититься.
func (s *SubmissionService) RetryPropagation(attemptUID string) error {
	attempt, err := s.submissionRepo.GetAttemptByUID(attemptUID)
	if err != nil {
		return err
	}
	if !attempt.Correct {
		return fmt.Errorf("%w: attempt %s is not a correct submission", apperrors.ErrValidation, attemptUID)
	}

	team, err := s.teamRepo.GetByMember(attempt.CompetitionID, attempt.UserID)
	if err != nil {
		return err
	}
	challenge, err := s.challengeRepo.GetByID(attempt.ChallengeID)
	if err != nil {
		return err
	}

	// Если решение уже засчитано, предыдущий запуск на самом деле
	// закоммитился - повторять нечего, транзакция не открывается.
	solved, err := s.submissionRepo.SolveExists(attempt.CompetitionID, team.ID, challenge.ID)
	if err != nil {
		return err
	}
	if solved {
		log.Printf("[SubmissionService] Повтор начисления: задание #%d уже засчитано команде #%d (attempt %s)",
			challenge.ID, team.ID, attemptUID)
		return nil
	}

	// freshSubmission=false: повтор - не новое событие сдачи
	if err := s.propagate(attempt, team, challenge, false); err != nil {
		metrics.PropagationFailures.Inc()
		return fmt.Errorf("%w: attempt %s: %v", ErrPropagationFailed, attemptUID, err)
	}
	return nil
}

// propagate - транзакция начисления очков за верную сдачу флага.
// Все шаги атомарны:
//  1. Вставка отметки ChallengeSolve (ON CONFLICT DO NOTHING) - та самая
//     проверка "ещё не засчитано": при дубликате очки не трогаются,
//     транзакция продолжает работать.
//  2. Инкремент счётчика submit_attempts задания (на каждое новое событие
//     верной сдачи, включая повторные - аналитика, не гейтинг).
//  3. Инкремент итогов команды и личных итогов участника на очки задания.
//
// Конкурентные верные сдачи одного флага сокомандниками: ровно одна
// транзакция вставляет отметку и начисляет очки, остальные видят дубликат
// и коммитят только счётчик попыток.
func (s *SubmissionService) propagate(attempt *entity.FlagSubmissionAttempt, team *entity.Team, challenge *entity.Challenge, freshSubmission bool) error {
	alreadySolved := false

	err := s.txManager.WithinTransaction(func(tx *gorm.DB) error {
		solve := &entity.ChallengeSolve{
			CompetitionID: attempt.CompetitionID,
			TeamID:        team.ID,
			ChallengeID:   challenge.ID,
			AttemptID:     attempt.ID,
			UserID:        attempt.UserID,
		}
		if err := s.submissionRepo.CreateSolve(tx, solve); err != nil {
			if !errors.Is(err, repository.ErrAlreadySolved) {
				return fmt.Errorf("failed to create solve record: %w", err)
			}
			alreadySolved = true
		}

		if !alreadySolved || freshSubmission {
			if err := s.challengeRepo.IncrementSubmitAttempts(tx, challenge.ID); err != nil {
				return fmt.Errorf("failed to increment submit attempts: %w", err)
			}
		}

		if alreadySolved {
			return nil
		}

		if err := s.standingRepo.EnsureTeamStanding(tx, attempt.CompetitionID, team.ID); err != nil {
			return fmt.Errorf("failed to ensure team standing: %w", err)
		}
		if err := s.standingRepo.AddTeamChallengeScore(tx, attempt.CompetitionID, team.ID, challenge.Score); err != nil {
			return fmt.Errorf("failed to add team score: %w", err)
		}

		if err := s.standingRepo.EnsureParticipantStanding(tx, attempt.CompetitionID, attempt.UserID, team.ID); err != nil {
			return fmt.Errorf("failed to ensure participant standing: %w", err)
		}
		if err := s.standingRepo.AddParticipantChallengeScore(tx, attempt.CompetitionID, attempt.UserID, challenge.Score); err != nil {
			return fmt.Errorf("failed to add participant score: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if alreadySolved {
		log.Printf("[SubmissionService] Задание #%d уже засчитано команде #%d, очки не начисляются (attempt %s)",
			challenge.ID, team.ID, attempt.AttemptUID)
		return nil
	}

	s.invalidateStandingCaches(attempt.CompetitionID, team.ID, attempt.UserID)
	if s.notifier != nil {
		s.notifier.NotifySolve(attempt.CompetitionID, team.ID, challenge.ID, challenge.Score)
	}

	log.Printf("[SubmissionService] Начислено %d очков команде #%d за задание #%d (attempt %s)",
		challenge.Score, team.ID, challenge.ID, attempt.AttemptUID)
	return nil
}

// ChallengeWithStatus - задание вместе с признаком "решено командой".
// Флаг задания наружу не отдается (скрыт на уровне entity).
type ChallengeWithStatus struct {
	Challenge entity.Challenge
	Solved    bool
}

// ListChallengesForUser возвращает задания соревнования с отметкой о том,
// какие из них уже засчитаны команде пользователя.
func (s *SubmissionService) ListChallengesForUser(competitionID, userID uint) ([]ChallengeWithStatus, error) {
	team, err := s.teamRepo.GetByMember(competitionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user #%d, competition #%d", ErrNotTeamMember, userID, competitionID)
		}
		return nil, err
	}

	challenges, err := s.challengeRepo.ListByCompetition(competitionID)
	if err != nil {
		return nil, err
	}

	solves, err := s.submissionRepo.ListSolvesByTeam(competitionID, team.ID)
	if err != nil {
		return nil, err
	}
	solved := make(map[uint]bool, len(solves))
	for _, sv := range solves {
		solved[sv.ChallengeID] = true
	}

	result := make([]ChallengeWithStatus, 0, len(challenges))
	for _, ch := range challenges {
		result = append(result, ChallengeWithStatus{Challenge: ch, Solved: solved[ch.ID]})
	}
	return result, nil
}

// invalidateStandingCaches сбрасывает кешированные итоги после коммита
func (s *SubmissionService) invalidateStandingCaches(competitionID, teamID, userID uint) {
	if s.cacheRepo == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("standings:team:%d:%d", competitionID, teamID),
		fmt.Sprintf("standings:participant:%d:%d", competitionID, userID),
		fmt.Sprintf("standings:leaderboard:%d", competitionID),
	}
	for _, key := range keys {
		if err := s.cacheRepo.Delete(key); err != nil {
			// Кеш с TTL, устаревание не критично
			log.Printf("[SubmissionService] Warning: failed to invalidate cache %s: %v", key, err)
		}
	}
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
