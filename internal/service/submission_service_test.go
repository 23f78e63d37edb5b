package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/domain/repository"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
)

func newTestSubmissionService(
	challengeRepo *MockChallengeRepository,
	teamRepo *MockTeamRepository,
	submissionRepo *MockSubmissionRepository,
	standingRepo *MockStandingRepository,
	caseSensitive bool,
) *SubmissionService {
	return NewSubmissionService(challengeRepo, teamRepo, submissionRepo, standingRepo, nil, nil, &fakeTxManager{}, caseSensitive)
}

func TestSubmissionService_SubmitFlag_ChallengeNotFound(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockChallengeRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := newTestSubmissionService(mockChallengeRepo, new(MockTeamRepository), new(MockSubmissionRepository), new(MockStandingRepository), true)

	// Act
	attempt, err := svc.SubmitFlag(1, 99, 10, "CTF{flag}")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, attempt)
}

func TestSubmissionService_SubmitFlag_ChallengeFromOtherCompetition(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 2, Flag: "CTF{flag}", Score: 100,
	}, nil)

	mockSubmissionRepo := new(MockSubmissionRepository)
	svc := newTestSubmissionService(mockChallengeRepo, new(MockTeamRepository), mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	_, err := svc.SubmitFlag(1, 3, 10, "CTF{flag}")

	// Assert: попытка не записывается
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockSubmissionRepo.AssertNotCalled(t, "CreateAttempt")
}

func TestSubmissionService_SubmitFlag_NotTeamMember(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(nil, apperrors.ErrNotFound)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	_, err := svc.SubmitFlag(1, 3, 10, "CTF{flag}")

	// Assert
	assert.ErrorIs(t, err, ErrNotTeamMember, "Сдача без членства в команде соревнования не принимается")
	mockSubmissionRepo.AssertNotCalled(t, "CreateAttempt")
}

func TestSubmissionService_SubmitFlag_IncorrectAnswer(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockStandingRepo := new(MockStandingRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockSubmissionRepo.On("CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt")).Return(nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, mockStandingRepo, true)

	// Act
	attempt, err := svc.SubmitFlag(1, 3, 10, "CTF{wrong}")

	// Assert: попытка записана, начисление не запускалось
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.False(t, attempt.Correct)
	assert.NotEmpty(t, attempt.AttemptUID, "Попытка получает публичный идентификатор")
	mockSubmissionRepo.AssertCalled(t, "CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt"))
	mockStandingRepo.AssertNotCalled(t, "AddTeamChallengeScore")
	mockSubmissionRepo.AssertNotCalled(t, "CreateSolve")
}

func TestSubmissionService_SubmitFlag_CaseSensitivePolicy(t *testing.T) {
	// Arrange: строгая политика сравнения флагов
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{Flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)

	mockSubmissionRepo.On("CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt")).Return(nil)

	svcSensitive := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, new(MockStandingRepository), true)

	// Act: при caseSensitive=true другой регистр — неверный ответ
	attempt, err := svcSensitive.SubmitFlag(1, 3, 10, "ctf{flag}")

	// Assert
	require.NoError(t, err)
	assert.False(t, attempt.Correct, "При строгом сравнении регистр имеет значение")
}

func TestSubmissionService_SubmitFlag_CorrectAnswer_PropagatesScore(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockStandingRepo := new(MockStandingRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockSubmissionRepo.On("CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt")).Return(nil)
	mockSubmissionRepo.On("CreateSolve", mock.Anything, mock.AnythingOfType("*entity.ChallengeSolve")).Return(nil)
	mockChallengeRepo.On("IncrementSubmitAttempts", mock.Anything, uint(3)).Return(nil)
	mockStandingRepo.On("EnsureTeamStanding", mock.Anything, uint(1), uint(5)).Return(nil)
	mockStandingRepo.On("AddTeamChallengeScore", mock.Anything, uint(1), uint(5), 100).Return(nil)
	mockStandingRepo.On("EnsureParticipantStanding", mock.Anything, uint(1), uint(10), uint(5)).Return(nil)
	mockStandingRepo.On("AddParticipantChallengeScore", mock.Anything, uint(1), uint(10), 100).Return(nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, mockStandingRepo, true)

	// Act
	attempt, err := svc.SubmitFlag(1, 3, 10, "CTF{real_flag}")

	// Assert: отметка решения, счётчик попыток и оба итога обновлены
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.True(t, attempt.Correct)
	mockSubmissionRepo.AssertCalled(t, "CreateSolve", mock.Anything, mock.AnythingOfType("*entity.ChallengeSolve"))
	mockChallengeRepo.AssertNumberOfCalls(t, "IncrementSubmitAttempts", 1)
	mockStandingRepo.AssertCalled(t, "AddTeamChallengeScore", mock.Anything, uint(1), uint(5), 100)
	mockStandingRepo.AssertCalled(t, "AddParticipantChallengeScore", mock.Anything, uint(1), uint(10), 100)
}

func TestSubmissionService_SubmitFlag_TeammateResubmission_CountsOnce(t *testing.T) {
	// Arrange: задание уже засчитано команде (сокомандник сдал флаг раньше)
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockStandingRepo := new(MockStandingRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(11)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10, Member1ID: testUintPtr(11),
	}, nil)
	mockSubmissionRepo.On("CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt")).Return(nil)
	mockSubmissionRepo.On("CreateSolve", mock.Anything, mock.AnythingOfType("*entity.ChallengeSolve")).
		Return(fmt.Errorf("%w: team #5, challenge #3", repository.ErrAlreadySolved))
	mockChallengeRepo.On("IncrementSubmitAttempts", mock.Anything, uint(3)).Return(nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, mockStandingRepo, true)

	// Act
	attempt, err := svc.SubmitFlag(1, 3, 11, "CTF{real_flag}")

	// Assert: сдача успешна, счётчик попыток растёт, очки не начисляются повторно
	require.NoError(t, err, "Повторная верная сдача сокомандника - не ошибка")
	require.NotNil(t, attempt)
	assert.True(t, attempt.Correct)
	mockChallengeRepo.AssertNumberOfCalls(t, "IncrementSubmitAttempts", 1)
	mockStandingRepo.AssertNotCalled(t, "EnsureTeamStanding")
	mockStandingRepo.AssertNotCalled(t, "AddTeamChallengeScore")
	mockStandingRepo.AssertNotCalled(t, "AddParticipantChallengeScore")
}

func TestSubmissionService_SubmitFlag_PropagationFailure_AttemptDurable(t *testing.T) {
	// Arrange: транзакция начисления падает после записи попытки
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockStandingRepo := new(MockStandingRepository)

	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockSubmissionRepo.On("CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt")).Return(nil)
	mockSubmissionRepo.On("CreateSolve", mock.Anything, mock.AnythingOfType("*entity.ChallengeSolve")).Return(nil)
	mockChallengeRepo.On("IncrementSubmitAttempts", mock.Anything, uint(3)).Return(nil)
	mockStandingRepo.On("EnsureTeamStanding", mock.Anything, uint(1), uint(5)).Return(nil)
	mockStandingRepo.On("AddTeamChallengeScore", mock.Anything, uint(1), uint(5), 100).
		Return(errors.New("connection reset"))

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, mockStandingRepo, true)

	// Act
	attempt, err := svc.SubmitFlag(1, 3, 10, "CTF{real_flag}")

	// Assert: типизированная ошибка, попытка уже в журнале и доступна для повтора
	assert.ErrorIs(t, err, ErrPropagationFailed)
	require.NotNil(t, attempt, "Попытка записана до начисления и переживает его сбой")
	assert.NotEmpty(t, attempt.AttemptUID)
	mockSubmissionRepo.AssertCalled(t, "CreateAttempt", mock.AnythingOfType("*entity.FlagSubmissionAttempt"))
}

func TestSubmissionService_RetryPropagation_AlreadyCounted(t *testing.T) {
	// Arrange: предыдущий запуск на самом деле закоммитился
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)

	mockSubmissionRepo.On("GetAttemptByUID", "uid-1").Return(&entity.FlagSubmissionAttempt{
		ID: 7, AttemptUID: "uid-1", CompetitionID: 1, ChallengeID: 3, UserID: 10, Correct: true,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockSubmissionRepo.On("SolveExists", uint(1), uint(5), uint(3)).Return(true, nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	err := svc.RetryPropagation("uid-1")

	// Assert: повтор идемпотентен, транзакция не открывается
	require.NoError(t, err)
	mockSubmissionRepo.AssertNotCalled(t, "CreateSolve")
	mockChallengeRepo.AssertNotCalled(t, "IncrementSubmitAttempts")
}

func TestSubmissionService_RetryPropagation_CompletesPendingPropagation(t *testing.T) {
	// Arrange: попытка в журнале, начисление в прошлый раз не прошло
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockStandingRepo := new(MockStandingRepository)

	mockSubmissionRepo.On("GetAttemptByUID", "uid-2").Return(&entity.FlagSubmissionAttempt{
		ID: 8, AttemptUID: "uid-2", CompetitionID: 1, ChallengeID: 3, UserID: 10, Correct: true,
	}, nil)
	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockChallengeRepo.On("GetByID", uint(3)).Return(&entity.Challenge{
		ID: 3, CompetitionID: 1, Flag: "CTF{real_flag}", Score: 100,
	}, nil)
	mockSubmissionRepo.On("SolveExists", uint(1), uint(5), uint(3)).Return(false, nil)
	mockSubmissionRepo.On("CreateSolve", mock.Anything, mock.AnythingOfType("*entity.ChallengeSolve")).Return(nil)
	mockChallengeRepo.On("IncrementSubmitAttempts", mock.Anything, uint(3)).Return(nil)
	mockStandingRepo.On("EnsureTeamStanding", mock.Anything, uint(1), uint(5)).Return(nil)
	mockStandingRepo.On("AddTeamChallengeScore", mock.Anything, uint(1), uint(5), 100).Return(nil)
	mockStandingRepo.On("EnsureParticipantStanding", mock.Anything, uint(1), uint(10), uint(5)).Return(nil)
	mockStandingRepo.On("AddParticipantChallengeScore", mock.Anything, uint(1), uint(10), 100).Return(nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, mockStandingRepo, true)

	// Act
	err := svc.RetryPropagation("uid-2")

	// Assert: незавершенное начисление доводится до конца
	require.NoError(t, err)
	mockStandingRepo.AssertCalled(t, "AddTeamChallengeScore", mock.Anything, uint(1), uint(5), 100)
	mockChallengeRepo.AssertNumberOfCalls(t, "IncrementSubmitAttempts", 1)
}

func TestSubmissionService_RetryPropagation_AttemptNotFound(t *testing.T) {
	// Arrange
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockSubmissionRepo.On("GetAttemptByUID", "missing-uid").Return(nil, apperrors.ErrNotFound)

	svc := newTestSubmissionService(new(MockChallengeRepository), new(MockTeamRepository), mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	err := svc.RetryPropagation("missing-uid")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmissionService_RetryPropagation_IncorrectAttempt(t *testing.T) {
	// Arrange: повтор начисления имеет смысл только для верной попытки
	mockSubmissionRepo := new(MockSubmissionRepository)
	mockSubmissionRepo.On("GetAttemptByUID", "uid-1").Return(&entity.FlagSubmissionAttempt{
		AttemptUID: "uid-1", Correct: false,
	}, nil)

	mockTeamRepo := new(MockTeamRepository)
	svc := newTestSubmissionService(new(MockChallengeRepository), mockTeamRepo, mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	err := svc.RetryPropagation("uid-1")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockTeamRepo.AssertNotCalled(t, "GetByMember")
}

func TestSubmissionService_ListChallengesForUser_SolvedFlags(t *testing.T) {
	// Arrange
	mockChallengeRepo := new(MockChallengeRepository)
	mockTeamRepo := new(MockTeamRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)

	mockTeamRepo.On("GetByMember", uint(1), uint(10)).Return(&entity.Team{
		ID: 5, CompetitionID: 1, CaptainID: 10,
	}, nil)
	mockChallengeRepo.On("ListByCompetition", uint(1)).Return([]entity.Challenge{
		{ID: 1, CompetitionID: 1, Title: "web-1", Score: 100},
		{ID: 2, CompetitionID: 1, Title: "pwn-1", Score: 200},
		{ID: 3, CompetitionID: 1, Title: "crypto-1", Score: 300},
	}, nil)
	mockSubmissionRepo.On("ListSolvesByTeam", uint(1), uint(5)).Return([]entity.ChallengeSolve{
		{CompetitionID: 1, TeamID: 5, ChallengeID: 2},
	}, nil)

	svc := newTestSubmissionService(mockChallengeRepo, mockTeamRepo, mockSubmissionRepo, new(MockStandingRepository), true)

	// Act
	challenges, err := svc.ListChallengesForUser(1, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, challenges, 3)
	assert.False(t, challenges[0].Solved)
	assert.True(t, challenges[1].Solved, "Засчитанное командой задание помечается решенным")
	assert.False(t, challenges[2].Solved)
}

func TestSubmissionService_ListChallengesForUser_NotTeamMember(t *testing.T) {
	// Arrange
	mockTeamRepo := new(MockTeamRepository)
	mockTeamRepo.On("GetByMember", uint(1), uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := newTestSubmissionService(new(MockChallengeRepository), mockTeamRepo, new(MockSubmissionRepository), new(MockStandingRepository), true)

	// Act
	_, err := svc.ListChallengesForUser(1, 99)

	// Assert
	assert.ErrorIs(t, err, ErrNotTeamMember)
}
