package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ctf-arena/internal/handler/dto"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
	"github.com/yourusername/ctf-arena/internal/service"
)

// QuizHandler обрабатывает запросы тестовой части: выдача вопросов
// и пересчет оценок
type QuizHandler struct {
	assignmentService *service.AssignmentService
	gradingService    *service.GradingService
}

// NewQuizHandler создает новый обработчик тестовой части
func NewQuizHandler(
	assignmentService *service.AssignmentService,
	gradingService *service.GradingService,
) *QuizHandler {
	return &QuizHandler{
		assignmentService: assignmentService,
		gradingService:    gradingService,
	}
}

// AssignQuestionsRequest представляет запрос на выдачу вопросов участнику
type AssignQuestionsRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

// AssignQuestions выдает участнику случайный набор вопросов.
// Повторный вызов для того же участника возвращает 409.
func (h *QuizHandler) AssignQuestions(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)

	var req AssignQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg, assignments, err := h.assignmentService.AssignQuestions(competitionID, req.TeamID, req.UserID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegistrationResponse(reg, assignments))
}

// GetMyAssignments возвращает выданные участнику вопросы
func (h *QuizHandler) GetMyAssignments(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	userID := c.MustGet("userID").(uint)

	reg, assignments, err := h.assignmentService.GetAssignments(competitionID, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationResponse(reg, assignments))
}

// SubmitAnswersRequest представляет ответы участника по выданным вопросам.
// Ключи - идентификаторы выданных вопросов (assignment id).
type SubmitAnswersRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// SubmitAnswers принимает ответы и пересчитывает оценку регистрации.
// Операция идемпотентна: повторная отправка тех же ответов дает тот же итог.
func (h *QuizHandler) SubmitAnswers(c *gin.Context) {
	registrationID := c.MustGet("registrationID").(uint)

	var req SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, err := h.gradingService.RegradeAndScore(registrationID, req.Answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegradeResponse{
		RegistrationID: registrationID,
		TotalQuizScore: total,
	})
}

// handleQuizError обрабатывает ошибки тестовой части
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateAssignment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientPool):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
