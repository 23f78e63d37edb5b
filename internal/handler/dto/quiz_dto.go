package dto

import (
	"time"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
)

// AssignmentResponse представляет выданный вопрос в формате для ответа клиенту.
// Снимок правильного ответа клиенту не отдается никогда.
type AssignmentResponse struct {
	ID              uint      `json:"id"`
	RegistrationID  uint      `json:"registration_id"`
	QuestionID      uint      `json:"question_id"`
	SubmittedAnswer *string   `json:"submitted_answer,omitempty"`
	Correct         bool      `json:"correct"`
	Score           int       `json:"score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RegistrationResponse представляет регистрацию участника на тестовую часть
type RegistrationResponse struct {
	ID             uint                 `json:"id"`
	CompetitionID  uint                 `json:"competition_id"`
	TeamID         uint                 `json:"team_id"`
	UserID         uint                 `json:"user_id"`
	TotalQuizScore int                  `json:"total_quiz_score"`
	Assignments    []AssignmentResponse `json:"assignments"`
	CreatedAt      time.Time            `json:"created_at"`
}

// RegradeResponse представляет итог пересчета оценок
type RegradeResponse struct {
	RegistrationID uint `json:"registration_id"`
	TotalQuizScore int  `json:"total_quiz_score"`
}

// NewAssignmentResponse создает DTO для выданного вопроса
func NewAssignmentResponse(a *entity.QuizAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              a.ID,
		RegistrationID:  a.RegistrationID,
		QuestionID:      a.QuestionID,
		SubmittedAnswer: a.SubmittedAnswer,
		Correct:         a.Correct,
		Score:           a.Score,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// NewRegistrationResponse создает DTO для регистрации вместе с выданными вопросами
func NewRegistrationResponse(reg *entity.QuizRegistration, assignments []entity.QuizAssignment) *RegistrationResponse {
	resp := &RegistrationResponse{
		ID:             reg.ID,
		CompetitionID:  reg.CompetitionID,
		TeamID:         reg.TeamID,
		UserID:         reg.UserID,
		TotalQuizScore: reg.TotalQuizScore,
		Assignments:    make([]AssignmentResponse, 0, len(assignments)),
		CreatedAt:      reg.CreatedAt,
	}
	for i := range assignments {
		resp.Assignments = append(resp.Assignments, NewAssignmentResponse(&assignments[i]))
	}
	return resp
}
