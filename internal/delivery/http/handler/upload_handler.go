package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/batch"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"
)

const (
	BatchCookieName = "batch_id"
	csvFilename     = "resume_results.csv"
	uploadInputMsg  = "Please upload at least one resume and fill in JD."
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"score": batch.FormatScore,
	"join":  func(s []string) string { return strings.Join(s, ", ") },
}).ParseFS(templateFS, "templates/*.html"))

type UploadHandler struct {
	uc usecase.BatchUsecase
}

func NewUploadHandler(uc usecase.BatchUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/upload-resume", h.Form)
	r.Post("/upload-resume", h.Upload)
	r.Get("/download-csv", h.DownloadCSV)
}

func (h *UploadHandler) Form(c fiber.Ctx) error {
	return render(c, "upload.html", nil)
}

func (h *UploadHandler) Upload(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(uploadInputMsg)
	}

	jd := ""
	if v := form.Value["job_description"]; len(v) > 0 {
		jd = v[0]
	}

	files, err := readUploads(form.File["resume_files"])
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	b, err := h.uc.ScoreUploads(c.Context(), jd, files)
	if errors.Is(err, usecase.ErrUploadInput) {
		return c.Status(fiber.StatusBadRequest).SendString(uploadInputMsg)
	}
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     BatchCookieName,
		Value:    b.ID.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return render(c, "results.html", b)
}

// DownloadCSV exports a batch. An unknown or missing batch yields a
// header-only file rather than an error.
func (h *UploadHandler) DownloadCSV(c fiber.Ctx) error {
	var rows []batch.Row

	raw := c.Query(BatchCookieName)
	if raw == "" {
		raw = c.Cookies(BatchCookieName)
	}
	if id, err := uuid.Parse(raw); err == nil {
		b, err := h.uc.Get(c.Context(), id)
		switch {
		case err == nil:
			rows = b.Rows
		case !errors.Is(err, batch.ErrNotFound):
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	var buf bytes.Buffer
	if err := batch.WriteCSV(&buf, rows); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	c.Attachment(csvFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func readUploads(headers []*multipart.FileHeader) ([]pipeline.File, error) {
	files := make([]pipeline.File, 0, len(headers))
	for _, fh := range headers {
		if fh == nil || fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, pipeline.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func render(c fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
