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

// SubmissionHandler обрабатывает сдачу флагов и чтение каталога заданий
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler создает новый обработчик сдачи флагов
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmitFlagRequest представляет запрос на сдачу флага
type SubmitFlagRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Answer string `json:"answer" binding:"required,max=255"`
}

// SubmitFlag принимает попытку сдачи флага.
// Попытка записывается в журнал всегда; при сбое начисления клиент
// получает 202 с attempt_uid для последующего повтора начисления.
func (h *SubmissionHandler) SubmitFlag(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	challengeID := c.MustGet("challengeID").(uint)

	var req SubmitFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.submissionService.SubmitFlag(competitionID, challengeID, req.UserID, req.Answer)
	if err != nil {
		// Попытка уже записана, незавершенным осталось только начисление
		if errors.Is(err, service.ErrPropagationFailed) && attempt != nil {
			log.Printf("[SubmissionHandler] Начисление по попытке %s не завершилось: %v", attempt.AttemptUID, err)
			c.JSON(http.StatusAccepted, gin.H{
				"attempt_uid": attempt.AttemptUID,
				"correct":     attempt.Correct,
				"error":       "score propagation pending, retry later",
			})
			return
		}
		h.handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitFlagResponse{
		AttemptUID: attempt.AttemptUID,
		Correct:    attempt.Correct,
	})
}

// RetryPropagation повторяет шаг начисления для записанной попытки.
// Повтор идемпотентен: уже засчитанное задание повторно не начисляется.
func (h *SubmissionHandler) RetryPropagation(c *gin.Context) {
	attemptUID := c.Param("attempt_uid")
	if attemptUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attempt_uid is required"})
		return
	}

	if err := h.submissionService.RetryPropagation(attemptUID); err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempt_uid": attemptUID, "propagated": true})
}

// ListChallenges возвращает задания соревнования с отметками о решениях
// команды пользователя
func (h *SubmissionHandler) ListChallenges(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	userID := c.MustGet("userID").(uint)

	challenges, err := h.submissionService.ListChallengesForUser(competitionID, userID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	resp := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, cs := range challenges {
		resp = append(resp, dto.NewChallengeResponse(cs))
	}
	c.JSON(http.StatusOK, gin.H{"challenges": resp})
}

// handleSubmissionError обрабатывает ошибки сдачи флагов
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotTeamMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPropagationFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in SubmissionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
