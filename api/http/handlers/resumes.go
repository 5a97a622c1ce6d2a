package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mkrivosheev/resume-scorer/api/http/presenter"
	"github.com/mkrivosheev/resume-scorer/pkg/auth"
	"github.com/mkrivosheev/resume-scorer/pkg/extract"
	"github.com/mkrivosheev/resume-scorer/pkg/resume"
)

type ResumesHandler struct {
	repo     resume.Repository
	maxBytes int64
	baseDir  string
}

func NewResumesHandler(repo resume.Repository) *ResumesHandler {
	return &ResumesHandler{
		repo:     repo,
		maxBytes: 15 << 20, // 15MB
		baseDir:  "uploads",
	}
}

// Upload загружает файл резюме, сохраняет его на диск и извлекает текст.
// @Summary Загрузить резюме
// @Description Принимает PDF/DOCX/TXT, сохраняет файл и извлекает текст для дальнейшей оценки.
// @Tags        Резюме
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл резюме (PDF/DOCX/TXT)"
// @Security    BearerAuth
// @Success     201 {object} map[string]any
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or txt)")
	}
	if _, err := extract.DetectFormat(fh.Filename); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf, docx and txt are allowed")
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
	// Extract text before touching storage: a broken document is a client error.
	txt, err := extract.FromFile(fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse resume: %v", err))
	}
	if err := os.MkdirAll(h.baseDir, 0o755); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to prepare storage")
	}
	id := uuid.New()
	dst := filepath.Join(h.baseDir, id.String()+filepath.Ext(fh.Filename))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to store file")
	}
	ownerIDStr, _ := c.Locals("userId").(string)
	ownerID, _ := uuid.Parse(ownerIDStr)
	meta := resume.Resume{
		ID:         id,
		OwnerID:    ownerID,
		Filename:   fh.Filename,
		MimeType:   fh.Header.Get("Content-Type"),
		Size:       fh.Size,
		StorageURI: dst,
	}
	if err := h.repo.Create(c.Context(), meta); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save metadata")
	}
	if err := h.repo.SaveParsed(c.Context(), resume.Parsed{ResumeID: id, Text: txt}); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save parsed text")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":       id.String(),
		"filename": fh.Filename,
		"sizeB":    fh.Size,
	})
}

// List возвращает список резюме пользователя (рекрутёр видит все).
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Param   limit  query int false "Максимум записей (до 200)"
// @Param   offset query int false "Смещение"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	var items []resume.Resume
	var err error
	if isRecruiter(c) {
		items, err = h.repo.ListAll(c.Context(), limit, offset)
	} else {
		items, err = h.repo.ListByOwner(c.Context(), requesterID(c), limit, offset)
	}
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает метаданные и распарсенный текст.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	meta, err := fetchResumeMeta(c, h.repo)
	if err != nil {
		return resumeError(c, err)
	}
	parsed, _ := h.repo.GetParsed(c.Context(), meta.ID) // may be empty if not parsed
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"meta":   meta,
		"parsed": parsed.Text,
	})
}

// Download скачивает исходный файл резюме.
// @Summary Скачать файл резюме
// @Tags    Резюме
// @Produce application/octet-stream
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/file [get]
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	meta, err := fetchResumeMeta(c, h.repo)
	if err != nil {
		return resumeError(c, err)
	}
	return c.Download(meta.StorageURI, meta.Filename)
}

// Delete удаляет резюме, сопутствующие данные и файл на диске.
// Удалять может только владелец.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.repo.DeleteForOwner(c.Context(), requesterID(c), id)
	if err != nil {
		return resumeError(c, err)
	}
	_ = os.Remove(meta.StorageURI)
	return c.SendStatus(http.StatusNoContent)
}

// fetchResumeMeta достаёт резюме с учётом роли: владелец видит своё,
// рекрутёр — любое.
func fetchResumeMeta(c *fiber.Ctx, repo resume.Repository) (resume.Resume, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resume.Resume{}, errInvalidID
	}
	if isRecruiter(c) {
		return repo.GetMetaAny(c.Context(), id)
	}
	return repo.GetMetaForOwner(c.Context(), requesterID(c), id)
}

var errInvalidID = errors.New("invalid id")

func resumeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, resume.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "storage failure")
	}
}

func requesterID(c *fiber.Ctx) uuid.UUID {
	idStr, _ := c.Locals("userId").(string)
	id, _ := uuid.Parse(idStr)
	return id
}

func isRecruiter(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == string(auth.RoleRecruiter)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
