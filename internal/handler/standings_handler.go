package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/ctf-arena/internal/domain/entity"
	"github.com/yourusername/ctf-arena/internal/handler/dto"
	apperrors "github.com/yourusername/ctf-arena/internal/pkg/errors"
	"github.com/yourusername/ctf-arena/internal/service"
)

// StandingsHandler обрабатывает чтение итоговых таблиц, журнала попыток
// и списка нарушений
type StandingsHandler struct {
	standingsService *service.StandingsService
}

// NewStandingsHandler создает новый обработчик итоговых таблиц
func NewStandingsHandler(standingsService *service.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetTeamStanding возвращает итог команды
func (h *StandingsHandler) GetTeamStanding(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	teamID := c.MustGet("teamID").(uint)

	standing, err := h.standingsService.GetTeamStanding(competitionID, teamID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTeamStandingResponse(standing))
}

// GetParticipantStanding возвращает итог участника
func (h *StandingsHandler) GetParticipantStanding(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	userID := c.MustGet("userID").(uint)

	standing, err := h.standingsService.GetParticipantStanding(competitionID, userID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewParticipantStandingResponse(standing))
}

// GetLeaderboard возвращает пагинированную таблицу лидеров соревнования
func (h *StandingsHandler) GetLeaderboard(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	standings, total, err := h.standingsService.ListTeamStandings(competitionID, page, perPage)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(standings, total, page, perPage))
}

// ExportLeaderboard экспортирует таблицу лидеров в CSV или Excel формате
func (h *StandingsHandler) ExportLeaderboard(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	format := c.DefaultQuery("format", "csv")

	// Получаем ВСЕ строки без пагинации для экспорта
	standings, err := h.standingsService.ListTeamStandingsAll(competitionID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	filename := fmt.Sprintf("competition_%d_leaderboard_%s", competitionID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, standings, filename)
	default:
		h.exportCSV(c, standings, filename)
	}
}

// exportCSV экспортирует таблицу лидеров в CSV с правильным экранированием
func (h *StandingsHandler) exportCSV(c *gin.Context, standings []entity.TeamStanding, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "Команда", "Очки всего", "Очки за задания"})

	for i, s := range standings {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatUint(uint64(s.TeamID), 10),
			strconv.Itoa(s.ScoreTotal),
			strconv.Itoa(s.ScoreFromChallenges),
		})
	}
}

// exportXLSX экспортирует таблицу лидеров в Excel с использованием StreamWriter
func (h *StandingsHandler) exportXLSX(c *gin.Context, standings []entity.TeamStanding, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Таблица лидеров"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[StandingsHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "Команда", "Очки всего", "Очки за задания"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[StandingsHandler] Ошибка записи заголовков: %v", err)
	}

	for i, s := range standings {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, s.TeamID, s.ScoreTotal, s.ScoreFromChallenges}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[StandingsHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[StandingsHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[StandingsHandler] Ошибка записи Excel в response: %v", err)
	}
}

// ListChallengeAttempts возвращает журнал попыток по заданию
func (h *StandingsHandler) ListChallengeAttempts(c *gin.Context) {
	challengeID := c.MustGet("challengeID").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	attempts, total, err := h.standingsService.ListAttemptsForChallenge(challengeID, page, perPage)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	resp := dto.PaginatedAttemptsResponse{
		Attempts: make([]dto.AttemptResponse, 0, len(attempts)),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
	for i := range attempts {
		resp.Attempts = append(resp.Attempts, dto.NewAttemptResponse(&attempts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListViolations возвращает записи о нарушениях в соревновании
func (h *StandingsHandler) ListViolations(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	violations, total, err := h.standingsService.ListViolations(competitionID, page, perPage)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	resp := dto.PaginatedViolationsResponse{
		Violations: make([]dto.ViolationResponse, 0, len(violations)),
		Total:      total,
		Page:       page,
		PerPage:    perPage,
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, dto.ViolationResponse{
			ID:            v.ID,
			CompetitionID: v.CompetitionID,
			TeamID:        v.TeamID,
			UserID:        v.UserID,
			Reason:        v.Reason,
			CreatedAt:     v.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// handleStandingsError обрабатывает ошибки read path
func (h *StandingsHandler) handleStandingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in StandingsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
