package dto

import (
	"time"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/service"
)

// ChallengeResponse представляет CTF-задание в формате для ответа клиенту.
// Флаг в DTO отсутствует принципиально.
type ChallengeResponse struct {
	ID             uint   `json:"id"`
	CompetitionID  uint   `json:"competition_id"`
	Title          string `json:"title"`
	Category       string `json:"category,omitempty"`
	Score          int    `json:"score"`
	SubmitAttempts int64  `json:"submit_attempts"`
	Solved         bool   `json:"solved"`
}

// AttemptResponse представляет попытку сдачи флага.
// Присланный текст ответа клиентам не возвращается.
type AttemptResponse struct {
	AttemptUID    string    `json:"attempt_uid"`
	CompetitionID uint      `json:"competition_id"`
	ChallengeID   uint      `json:"challenge_id"`
	UserID        uint      `json:"user_id"`
	Correct       bool      `json:"correct"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitFlagResponse представляет результат сдачи флага
type SubmitFlagResponse struct {
	AttemptUID string `json:"attempt_uid"`
	Correct    bool   `json:"correct"`
}

// TeamStandingResponse представляет итог команды
type TeamStandingResponse struct {
	CompetitionID       uint      `json:"competition_id"`
	TeamID              uint      `json:"team_id"`
	ScoreTotal          int       `json:"score_total"`
	ScoreFromChallenges int       `json:"score_from_challenges"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ParticipantStandingResponse представляет итог участника
type ParticipantStandingResponse struct {
	CompetitionID       uint      `json:"competition_id"`
	UserID              uint      `json:"user_id"`
	TeamID              uint      `json:"team_id"`
	ScoreTotal          int       `json:"score_total"`
	ScoreFromChallenges int       `json:"score_from_challenges"`
	ScoreFromQuiz       int       `json:"score_from_quiz"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// LeaderboardEntry представляет строку таблицы лидеров
type LeaderboardEntry struct {
	Rank                int `json:"rank"`
	TeamID              uint `json:"team_id"`
	ScoreTotal          int `json:"score_total"`
	ScoreFromChallenges int `json:"score_from_challenges"`
}

// PaginatedLeaderboardResponse представляет пагинированную таблицу лидеров
type PaginatedLeaderboardResponse struct {
	Standings []LeaderboardEntry `json:"standings"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

// PaginatedAttemptsResponse представляет пагинированный журнал попыток
type PaginatedAttemptsResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

// ViolationResponse представляет запись о нарушении
type ViolationResponse struct {
	ID            uint      `json:"id"`
	CompetitionID uint      `json:"competition_id"`
	TeamID        uint      `json:"team_id"`
	UserID        *uint     `json:"user_id,omitempty"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaginatedViolationsResponse представляет пагинированный список нарушений
type PaginatedViolationsResponse struct {
	Violations []ViolationResponse `json:"violations"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
}

// NewChallengeResponse создает DTO для задания с отметкой о решении
func NewChallengeResponse(cs service.ChallengeWithStatus) ChallengeResponse {
	return ChallengeResponse{
		ID:             cs.Challenge.ID,
		CompetitionID:  cs.Challenge.CompetitionID,
		Title:          cs.Challenge.Title,
		Category:       cs.Challenge.Category,
		Score:          cs.Challenge.Score,
		SubmitAttempts: cs.Challenge.SubmitAttempts,
		Solved:         cs.Solved,
	}
}

// NewAttemptResponse создает DTO для попытки сдачи
func NewAttemptResponse(a *entity.FlagSubmissionAttempt) AttemptResponse {
	return AttemptResponse{
		AttemptUID:    a.AttemptUID,
		CompetitionID: a.CompetitionID,
		ChallengeID:   a.ChallengeID,
		UserID:        a.UserID,
		Correct:       a.Correct,
		CreatedAt:     a.CreatedAt,
	}
}

// NewTeamStandingResponse создает DTO для итога команды
func NewTeamStandingResponse(s *entity.TeamStanding) *TeamStandingResponse {
	return &TeamStandingResponse{
		CompetitionID:       s.CompetitionID,
		TeamID:              s.TeamID,
		ScoreTotal:          s.ScoreTotal,
		ScoreFromChallenges: s.ScoreFromChallenges,
		UpdatedAt:           s.UpdatedAt,
	}
}

// NewParticipantStandingResponse создает DTO для итога участника
func NewParticipantStandingResponse(s *entity.ParticipantStanding) *ParticipantStandingResponse {
	return &ParticipantStandingResponse{
		CompetitionID:       s.CompetitionID,
		UserID:              s.UserID,
		TeamID:              s.TeamID,
		ScoreTotal:          s.ScoreTotal,
		ScoreFromChallenges: s.ScoreFromChallenges,
		ScoreFromQuiz:       s.ScoreFromQuiz,
		UpdatedAt:           s.UpdatedAt,
	}
}

// NewLeaderboardResponse создает DTO таблицы лидеров.
// Ранг присваивается по позиции в уже отсортированном списке.
func NewLeaderboardResponse(standings []entity.TeamStanding, total int64, page, perPage int) *PaginatedLeaderboardResponse {
	resp := &PaginatedLeaderboardResponse{
		Standings: make([]LeaderboardEntry, 0, len(standings)),
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
	offset := (page - 1) * perPage
	for i, s := range standings {
		resp.Standings = append(resp.Standings, LeaderboardEntry{
			Rank:                offset + i + 1,
			TeamID:              s.TeamID,
			ScoreTotal:          s.ScoreTotal,
			ScoreFromChallenges: s.ScoreFromChallenges,
		})
	}
	return resp
}
