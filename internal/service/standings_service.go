package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

// StandingsService - read path итоговых таблиц.
// Не пишет в агрегаты (этим занимаются транзакции начисления и пересчёта),
// горячие чтения обслуживает через кеш с TTL; писатели инвалидируют ключи
// после коммита, так что читатель видит итог не старше TTL и всегда
// согласованный на границе транзакции.
type StandingsService struct {
	standingRepo   repository.StandingRepository
	submissionRepo repository.SubmissionRepository
	violationRepo  repository.ViolationRepository
	cacheRepo      repository.CacheRepository
	cacheTTL       time.Duration
}

// NewStandingsService создает новый сервис чтения итогов
func NewStandingsService(
	standingRepo repository.StandingRepository,
	submissionRepo repository.SubmissionRepository,
	violationRepo repository.ViolationRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *StandingsService {
	return &StandingsService{
		standingRepo:   standingRepo,
		submissionRepo: submissionRepo,
		violationRepo:  violationRepo,
		cacheRepo:      cacheRepo,
		cacheTTL:       cacheTTL,
	}
}

// GetTeamStanding возвращает текущий итог команды (через кеш)
func (s *StandingsService) GetTeamStanding(competitionID, teamID uint) (*entity.TeamStanding, error) {
	key := fmt.Sprintf("standings:team:%d:%d", competitionID, teamID)

	if s.cacheRepo != nil {
		var cached entity.TeamStanding
		if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[StandingsService] Warning: cache read failed for %s: %v", key, err)
		}
	}

	standing, err := s.standingRepo.GetTeamStanding(competitionID, teamID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(key, standing, s.cacheTTL); err != nil {
			log.Printf("[StandingsService] Warning: cache write failed for %s: %v", key, err)
		}
	}
	return standing, nil
}

// GetParticipantStanding возвращает текущий личный итог участника (через кеш)
func (s *StandingsService) GetParticipantStanding(competitionID, userID uint) (*entity.ParticipantStanding, error) {
	key := fmt.Sprintf("standings:participant:%d:%d", competitionID, userID)

	if s.cacheRepo != nil {
		var cached entity.ParticipantStanding
		if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[StandingsService] Warning: cache read failed for %s: %v", key, err)
		}
	}

	standing, err := s.standingRepo.GetParticipantStanding(competitionID, userID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(key, standing, s.cacheTTL); err != nil {
			log.Printf("[StandingsService] Warning: cache write failed for %s: %v", key, err)
		}
	}
	return standing, nil
}

// ListTeamStandings возвращает таблицу команд соревнования с пагинацией.
// Без кеша: пагинированные выборки дешевле держать на БД, чем потоки
// вариантов (page, pageSize) в Redis.
func (s *StandingsService) ListTeamStandings(competitionID uint, page, pageSize int) ([]entity.TeamStanding, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.standingRepo.ListTeamStandings(competitionID, pageSize, offset)
}

// ListTeamStandingsAll возвращает ВСЮ таблицу соревнования без пагинации.
// Используется для экспорта, где нужна полная выборка.
func (s *StandingsService) ListTeamStandingsAll(competitionID uint) ([]entity.TeamStanding, error) {
	const exportBatch = 1000
	var all []entity.TeamStanding
	for offset := 0; ; offset += exportBatch {
		batch, _, err := s.standingRepo.ListTeamStandings(competitionID, exportBatch, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportBatch {
			return all, nil
		}
	}
}

// ListAttemptsForChallenge возвращает журнал попыток по заданию с пагинацией
func (s *StandingsService) ListAttemptsForChallenge(challengeID uint, page, pageSize int) ([]entity.FlagSubmissionAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.submissionRepo.ListAttemptsByChallenge(challengeID, pageSize, offset)
}

// ListViolations возвращает записи о нарушениях соревнования
func (s *StandingsService) ListViolations(competitionID uint, page, pageSize int) ([]entity.ViolationRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.violationRepo.ListByCompetition(competitionID, pageSize, offset)
}
