package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mkrivosheev/resume-scorer/api/http/presenter"
	"github.com/mkrivosheev/resume-scorer/pkg/advice"
	"github.com/mkrivosheev/resume-scorer/pkg/nlp"
	"github.com/mkrivosheev/resume-scorer/pkg/resume"
	"github.com/mkrivosheev/resume-scorer/pkg/scoring"
)

type AdviceHandler struct {
	repo     resume.Repository
	keywords nlp.Extractor
}

func NewAdviceHandler(repo resume.Repository, keywords nlp.Extractor) *AdviceHandler {
	return &AdviceHandler{repo: repo, keywords: keywords}
}

// Ats прогоняет сохранённое резюме через ATS-проверки.
// @Summary ATS-проверки резюме
// @Tags    Рекомендации
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {array} advice.Check
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/ats [get]
func (h *AdviceHandler) Ats(c *fiber.Ctx) error {
	parsed, err := h.fetchParsed(c)
	if err != nil {
		return resumeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, advice.AtsChecks(parsed.Text))
}

type roadmapRequest struct {
	JobText string `json:"jobText"`
	Months  int    `json:"months" example:"3"`
}

// Roadmap строит план обучения по навыкам, которых не хватает для вакансии.
// @Summary План обучения
// @Tags    Рекомендации
// @Accept  json
// @Produce json
// @Param   id    path string         true "ID резюме (UUID)"
// @Param   input body roadmapRequest true "Текст вакансии и срок в месяцах"
// @Security BearerAuth
// @Success 200 {object} map[int][]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/roadmap [post]
func (h *AdviceHandler) Roadmap(c *fiber.Ctx) error {
	var req roadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Months == 0 {
		req.Months = 3
	}
	parsed, err := h.fetchParsed(c)
	if err != nil {
		return resumeError(c, err)
	}
	_, _, missing := scoring.LexicalMatch(h.keywords.Keywords(parsed.Text), h.keywords.Keywords(req.JobText))
	return presenter.JSON(c, http.StatusOK, advice.Roadmap(missing, req.Months))
}

// Roles подбирает должности по навыкам из резюме.
// @Summary Подходящие должности
// @Tags    Рекомендации
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/roles [get]
func (h *AdviceHandler) Roles(c *fiber.Ctx) error {
	parsed, err := h.fetchParsed(c)
	if err != nil {
		return resumeError(c, err)
	}
	skills := h.keywords.Keywords(parsed.Text).Norms()
	return presenter.JSON(c, http.StatusOK, advice.SuggestRoles(skills))
}

func (h *AdviceHandler) fetchParsed(c *fiber.Ctx) (resume.Parsed, error) {
	meta, err := fetchResumeMeta(c, h.repo)
	if err != nil {
		return resume.Parsed{}, err
	}
	return h.repo.GetParsed(c.Context(), meta.ID)
}
