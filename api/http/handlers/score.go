package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mkrivosheev/resume-scorer/api/http/presenter"
	"github.com/mkrivosheev/resume-scorer/pkg/extract"
	"github.com/mkrivosheev/resume-scorer/pkg/resume"
	"github.com/mkrivosheev/resume-scorer/pkg/scoring"
)

// Scorer — возможности конвейера оценки, нужные HTTP-слою.
type Scorer interface {
	ScoreText(ctx context.Context, resumeText, jobText string) scoring.Report
	ScoreDocument(ctx context.Context, filename string, data []byte, jobText string) (scoring.Report, error)
}

type ScoreHandler struct {
	scorer   Scorer
	repo     resume.Repository
	maxBytes int64
}

func NewScoreHandler(scorer Scorer, repo resume.Repository) *ScoreHandler {
	return &ScoreHandler{
		scorer:   scorer,
		repo:     repo,
		maxBytes: 15 << 20, // 15MB
	}
}

type scoreTextRequest struct {
	ResumeText string `json:"resumeText"`
	JobText    string `json:"jobText"`
}

type scoreJobRequest struct {
	JobText string `json:"jobText"`
}

// Score оценивает соответствие текста резюме тексту вакансии.
// @Summary Оценить резюме по тексту
// @Description Возвращает итоговый балл, компоненты (лексика и AI), совпавшие и недостающие навыки.
// @Tags    Оценка
// @Accept  json
// @Produce json
// @Param   input body scoreTextRequest true "Тексты резюме и вакансии"
// @Security BearerAuth
// @Success 200 {object} scoring.Report
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /score [post]
func (h *ScoreHandler) Score(c *fiber.Ctx) error {
	var req scoreTextRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	// Пустое резюме при непустой вакансии — допустимый вырожденный случай:
	// отчёт выйдет с нулевой лексикой и полным списком недостающих навыков.
	if strings.TrimSpace(req.ResumeText) == "" && strings.TrimSpace(req.JobText) == "" {
		return presenter.Error(c, http.StatusBadRequest, "resumeText or jobText is required")
	}
	report := h.scorer.ScoreText(c.Context(), req.ResumeText, req.JobText)
	return presenter.JSON(c, http.StatusOK, report)
}

// ScoreFile оценивает загруженный файл резюме против текста вакансии.
// @Summary Оценить резюме из файла
// @Description Единственный шаг, который может завершить запрос ошибкой, — извлечение текста из файла.
// @Tags    Оценка
// @Accept  multipart/form-data
// @Produce json
// @Param   file    formData file   true "Файл резюме (PDF/DOCX/TXT)"
// @Param   jobText formData string true "Текст вакансии"
// @Security BearerAuth
// @Success 200 {object} scoring.Report
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /score/file [post]
func (h *ScoreHandler) ScoreFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	report, err := h.scorer.ScoreDocument(c.Context(), fh.Filename, data, c.FormValue("jobText"))
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf, docx and txt are allowed")
		case errors.Is(err, extract.ErrExtractionFailed):
			return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse resume: %v", err))
		default:
			return presenter.Error(c, http.StatusInternalServerError, "scoring failed")
		}
	}
	return presenter.JSON(c, http.StatusOK, report)
}

// ScoreStored оценивает сохранённое резюме против текста вакансии.
// @Summary Оценить сохранённое резюме
// @Tags    Оценка
// @Accept  json
// @Produce json
// @Param   id    path string          true "ID резюме (UUID)"
// @Param   input body scoreJobRequest true "Текст вакансии"
// @Security BearerAuth
// @Success 200 {object} scoring.Report
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/score [post]
func (h *ScoreHandler) ScoreStored(c *fiber.Ctx) error {
	var req scoreJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	meta, err := fetchResumeMeta(c, h.repo)
	if err != nil {
		return resumeError(c, err)
	}
	parsed, err := h.repo.GetParsed(c.Context(), meta.ID)
	if err != nil {
		return resumeError(c, err)
	}
	report := h.scorer.ScoreText(c.Context(), parsed.Text, req.JobText)
	return presenter.JSON(c, http.StatusOK, report)
}
