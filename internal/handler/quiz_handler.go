package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/spacesnap-api/internal/domain/entity"
	"github.com/yourusername/spacesnap-api/internal/handler/dto"
	"github.com/yourusername/spacesnap-api/internal/handler/helper"
	"github.com/yourusername/spacesnap-api/internal/middleware"
	"github.com/yourusername/spacesnap-api/internal/service"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
)

// QuizService - операции квиза, которые нужны обработчику
type QuizService interface {
	ListQuestions(ctx context.Context) ([]entity.Question, error)
	SubmitQuiz(ctx context.Context, input service.SubmitQuizInput) (*stylequiz.Outcome, error)
	GetResult(ctx context.Context, id uint, viewer service.ResultViewer) (*stylequiz.Outcome, error)
	ListUserResults(ctx context.Context, userID uint, limit, offset int) ([]entity.QuizResult, error)
	ListAllResults(ctx context.Context) ([]entity.QuizResult, error)
	ReplaceCuratedQuiz(ctx context.Context, title string, questions []entity.Question) (*entity.Quiz, error)
}

// QuizHandler обрабатывает запросы квиза стилей
type QuizHandler struct {
	quizService QuizService
}

// NewQuizHandler создает обработчик квиза
func NewQuizHandler(quizService QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuestions возвращает активный набор вопросов
// GET /api/quiz/questions
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	questions, err := h.quizService.ListQuestions(c.Request.Context())
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.QuestionsResponse{Questions: questions, Total: len(questions)})
}

// SubmitQuiz считает и сохраняет результат попытки
// POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.quizService.SubmitQuiz(c.Request.Context(), service.SubmitQuizInput{
		SessionID: req.SessionID,
		UserID:    helper.OptionalUserID(c),
		Answers:   req.Answers,
	})
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResultResponse(outcome))
}

// GetResult возвращает сохраненный результат
// GET /api/quiz/results/:id
func (h *QuizHandler) GetResult(c *gin.Context) {
	resultID := c.MustGet("resultID").(uint)

	viewer := service.ResultViewer{
		UserID:  helper.OptionalUserID(c),
		IsAdmin: c.GetString(middleware.ContextRole) == entity.RoleAdmin,
	}
	outcome, err := h.quizService.GetResult(c.Request.Context(), resultID, viewer)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResultResponse(outcome))
}

// GetMyResults возвращает историю прохождений текущего пользователя
// GET /api/quiz/my-results?limit=&skip=
func (h *QuizHandler) GetMyResults(c *gin.Context) {
	userID, ok := helper.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.quizService.ListUserResults(c.Request.Context(), userID,
		helper.QueryInt(c, "limit", 20), helper.QueryInt(c, "skip", 0))
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": dto.NewResultSummaries(results)})
}

// ReplaceQuiz сохраняет новый курируемый набор вопросов
// PUT /api/admin/quiz
func (h *QuizHandler) ReplaceQuiz(c *gin.Context) {
	var req dto.ReplaceQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.ReplaceCuratedQuiz(c.Request.Context(), req.Title, req.Questions)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": quiz.ID, "title": quiz.Title, "total": len(quiz.Questions)})
}

// ExportResults выгружает все результаты в Excel или CSV
// GET /api/admin/quiz-results/export?format=xlsx|csv
func (h *QuizHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	results, err := h.quizService.ListAllResults(c.Request.Context())
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	filename := fmt.Sprintf("spacesnap_quiz_results_%s", time.Now().Format("2006-01-02"))
	switch format {
	case "csv":
		h.exportCSV(c, results, filename)
	default:
		h.exportXLSX(c, results, filename)
	}
}

var exportHeaders = []string{"ID", "Дата", "Сессия", "Пользователь", "Стиль", "Очки стилей", "Фото комнат"}

func exportRow(r entity.QuizResult) []string {
	userID := ""
	if r.UserID != nil {
		userID = strconv.FormatUint(uint64(*r.UserID), 10)
	}
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.CreatedAt.Format("2006-01-02 15:04:05"),
		sanitizeForExcel(r.SessionID),
		userID,
		r.RecommendedStyle,
		formatScores(r.StyleScores),
		strconv.Itoa(len(r.StyleRoomImages)),
	}
}

// formatScores выводит очки в порядке появления стилей: "rustic:10, modern:5"
func formatScores(scores entity.StyleScores) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Style, s.Points))
	}
	return strings.Join(parts, ", ")
}

// exportCSV выгружает результаты в CSV с BOM для Excel
func (h *QuizHandler) exportCSV(c *gin.Context, results []entity.QuizResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range results {
		writer.Write(exportRow(r))
	}
}

// exportXLSX выгружает результаты в Excel через StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, results []entity.QuizResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, header := range exportHeaders {
		headers[i] = header
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range results {
		rowNum := i + 2
		values := exportRow(r)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		row[0] = r.ID
		row[6] = len(r.StyleRoomImages)
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
