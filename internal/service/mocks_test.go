package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// MockCompetitionRepository реализует repository.CompetitionRepository
type MockCompetitionRepository struct {
	mock.Mock
}

func (m *MockCompetitionRepository) Create(competition *entity.Competition) error {
	args := m.Called(competition)
	return args.Error(0)
}

func (m *MockCompetitionRepository) GetByID(id uint) (*entity.Competition, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Competition), args.Error(1)
}

func (m *MockCompetitionRepository) List(limit, offset int) ([]entity.Competition, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Competition), args.Error(1)
}

// MockTeamRepository реализует repository.TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(team *entity.Team) error {
	args := m.Called(team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(id uint) (*entity.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByMember(competitionID, userID uint) (*entity.Team, error) {
	args := m.Called(competitionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByCompetition(competitionID uint) ([]entity.Team, error) {
	args := m.Called(competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Team), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.QuizQuestion) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.QuizQuestion) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.QuizQuestion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ids []uint) ([]entity.QuizQuestion, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizQuestion), args.Error(1)
}

func (m *MockQuestionRepository) ListIDs() ([]uint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateRegistration(tx *gorm.DB, registration *entity.QuizRegistration) error {
	args := m.Called(tx, registration)
	return args.Error(0)
}

func (m *MockQuizRepository) GetRegistrationByID(id uint) (*entity.QuizRegistration, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizRegistration), args.Error(1)
}

func (m *MockQuizRepository) GetRegistrationByUser(competitionID, userID uint) (*entity.QuizRegistration, error) {
	args := m.Called(competitionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizRegistration), args.Error(1)
}

func (m *MockQuizRepository) CreateAssignments(tx *gorm.DB, assignments []entity.QuizAssignment) error {
	args := m.Called(tx, assignments)
	return args.Error(0)
}

func (m *MockQuizRepository) GetAssignmentsByRegistration(registrationID uint) ([]entity.QuizAssignment, error) {
	args := m.Called(registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAssignment), args.Error(1)
}

func (m *MockQuizRepository) LockAssignmentsByRegistration(tx *gorm.DB, registrationID uint) ([]entity.QuizAssignment, error) {
	args := m.Called(tx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAssignment), args.Error(1)
}

func (m *MockQuizRepository) UpdateAssignmentGrade(tx *gorm.DB, assignment *entity.QuizAssignment) error {
	args := m.Called(tx, assignment)
	return args.Error(0)
}

func (m *MockQuizRepository) UpdateRegistrationTotal(tx *gorm.DB, registrationID uint, total int) error {
	args := m.Called(tx, registrationID, total)
	return args.Error(0)
}

// MockChallengeRepository реализует repository.ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(challenge *entity.Challenge) error {
	args := m.Called(challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(id uint) (*entity.Challenge, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) ListByCompetition(competitionID uint) ([]entity.Challenge, error) {
	args := m.Called(competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) IncrementSubmitAttempts(tx *gorm.DB, challengeID uint) error {
	args := m.Called(tx, challengeID)
	return args.Error(0)
}

// MockSubmissionRepository реализует repository.SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) CreateAttempt(attempt *entity.FlagSubmissionAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetAttemptByUID(attemptUID string) (*entity.FlagSubmissionAttempt, error) {
	args := m.Called(attemptUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlagSubmissionAttempt), args.Error(1)
}

func (m *MockSubmissionRepository) ListAttemptsByChallenge(challengeID uint, limit, offset int) ([]entity.FlagSubmissionAttempt, int64, error) {
	args := m.Called(challengeID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.FlagSubmissionAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionRepository) CreateSolve(tx *gorm.DB, solve *entity.ChallengeSolve) error {
	args := m.Called(tx, solve)
	return args.Error(0)
}

func (m *MockSubmissionRepository) SolveExists(competitionID, teamID, challengeID uint) (bool, error) {
	args := m.Called(competitionID, teamID, challengeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubmissionRepository) ListSolvesByTeam(competitionID, teamID uint) ([]entity.ChallengeSolve, error) {
	args := m.Called(competitionID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChallengeSolve), args.Error(1)
}

// MockStandingRepository реализует repository.StandingRepository
type MockStandingRepository struct {
	mock.Mock
}

func (m *MockStandingRepository) EnsureTeamStanding(tx *gorm.DB, competitionID, teamID uint) error {
	args := m.Called(tx, competitionID, teamID)
	return args.Error(0)
}

func (m *MockStandingRepository) AddTeamChallengeScore(tx *gorm.DB, competitionID, teamID uint, score int) error {
	args := m.Called(tx, competitionID, teamID, score)
	return args.Error(0)
}

func (m *MockStandingRepository) EnsureParticipantStanding(tx *gorm.DB, competitionID, userID, teamID uint) error {
	args := m.Called(tx, competitionID, userID, teamID)
	return args.Error(0)
}

func (m *MockStandingRepository) AddParticipantChallengeScore(tx *gorm.DB, competitionID, userID uint, score int) error {
	args := m.Called(tx, competitionID, userID, score)
	return args.Error(0)
}

func (m *MockStandingRepository) SetParticipantQuizScore(tx *gorm.DB, competitionID, userID uint, quizScore int) error {
	args := m.Called(tx, competitionID, userID, quizScore)
	return args.Error(0)
}

func (m *MockStandingRepository) GetTeamStanding(competitionID, teamID uint) (*entity.TeamStanding, error) {
	args := m.Called(competitionID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TeamStanding), args.Error(1)
}

func (m *MockStandingRepository) GetParticipantStanding(competitionID, userID uint) (*entity.ParticipantStanding, error) {
	args := m.Called(competitionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ParticipantStanding), args.Error(1)
}

func (m *MockStandingRepository) ListTeamStandings(competitionID uint, limit, offset int) ([]entity.TeamStanding, int64, error) {
	args := m.Called(competitionID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.TeamStanding), args.Get(1).(int64), args.Error(2)
}

// MockViolationRepository реализует repository.ViolationRepository
type MockViolationRepository struct {
	mock.Mock
}

func (m *MockViolationRepository) GetByID(id uint) (*entity.ViolationRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ViolationRecord), args.Error(1)
}

func (m *MockViolationRepository) ListByCompetition(competitionID uint, limit, offset int) ([]entity.ViolationRecord, int64, error) {
	args := m.Called(competitionID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ViolationRecord), args.Get(1).(int64), args.Error(2)
}

// fakeTxManager реализует repository.TxManager без реальной базы:
// fn получает nil вместо транзакции, tx-методы репозиториев в тестах
// мокируются и *gorm.DB не используют
type fakeTxManager struct{}

func (f *fakeTxManager) WithinTransaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}
