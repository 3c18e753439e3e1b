package resumes

import (
	"context"
	"errors"

	"resume-forge/cmd/server/handlers/handlerutil"
	"resume-forge/cmd/server/handlers/httperr"
	"resume-forge/internal/export"
	"resume-forge/internal/logger"
	"resume-forge/internal/render"
	"resume-forge/internal/sections"
	"resume-forge/internal/services/resumes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResumesService defines the interface for the resumes service
type ResumesService interface {
	Save(ctx context.Context, userID bson.ObjectID, req resumes.SaveResumeRequest) (*resumes.SaveResumeResponse, bool, error)
	List(ctx context.Context, userID bson.ObjectID) ([]*resumes.Resume, error)
	Get(ctx context.Context, userID, resumeID bson.ObjectID) (*resumes.Resume, error)
	Delete(ctx context.Context, userID, resumeID bson.ObjectID) error
	Cleanup(ctx context.Context, userID bson.ObjectID) (*resumes.CleanupResponse, error)
	Inspect(ctx context.Context, userID, resumeID bson.ObjectID) (*resumes.InspectResponse, error)
}

// Handlers contains the resume HTTP handlers
type Handlers struct {
	resumesService ResumesService
	renderer       *render.Renderer
	exporter       *export.Exporter
	validator      *validator.Validate
}

// NewHandlers creates new resume handlers
func NewHandlers(svc ResumesService, renderer *render.Renderer, exporter *export.Exporter, validator *validator.Validate) *Handlers {
	return &Handlers{
		resumesService: svc,
		renderer:       renderer,
		exporter:       exporter,
		validator:      validator,
	}
}

// Save upserts the caller's resume. 201 on first save, 200 on overwrite.
func (h *Handlers) Save(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req resumes.SaveResumeRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Save"); err != nil {
		return err
	}

	resp, created, err := h.resumesService.Save(c.Context(), userID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Save", userID, nil, resumes.ErrResumeNotFound)
	}

	if created {
		return c.Status(201).JSON(resp)
	}
	return c.JSON(resp)
}

// List returns the caller's resumes.
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	list, err := h.resumesService.List(c.Context(), userID)
	if err != nil {
		return handlerutil.HandleServiceError(err, "List", userID, nil, resumes.ErrResumeNotFound)
	}

	// Bare array on the wire, [] rather than null when the account is empty.
	if list == nil {
		list = []*resumes.Resume{}
	}
	return c.JSON(list)
}

// Delete removes one resume scoped to the caller.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	resumeID, err := handlerutil.ExtractResumeID(c, userID, "Delete", resumes.ErrResumeNotFound)
	if err != nil {
		return err
	}

	if err := h.resumesService.Delete(c.Context(), userID, resumeID); err != nil {
		return handlerutil.HandleServiceError(err, "Delete", userID, &resumeID, resumes.ErrResumeNotFound)
	}

	return c.JSON(map[string]string{"message": "Resume deleted successfully"})
}

// Cleanup bulk-deletes the caller's structurally empty resumes.
func (h *Handlers) Cleanup(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.resumesService.Cleanup(c.Context(), userID)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Cleanup", userID, nil, resumes.ErrResumeNotFound)
	}

	return c.JSON(resp)
}

// Inspect reports section array lengths for one resume.
func (h *Handlers) Inspect(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	resumeID, err := handlerutil.ExtractResumeID(c, userID, "Inspect", resumes.ErrResumeNotFound)
	if err != nil {
		return err
	}

	resp, err := h.resumesService.Inspect(c.Context(), userID, resumeID)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Inspect", userID, &resumeID, resumes.ErrResumeNotFound)
	}

	return c.JSON(resp)
}

// ExportRequest selects the artifact for one export call. SectionOrder and
// Template are optional; the stored resume supplies defaults.
type ExportRequest struct {
	Format       string   `json:"format" validate:"required,oneof=pdf html word"`
	Template     string   `json:"template" validate:"omitempty"`
	SectionOrder []string `json:"sectionOrder" validate:"omitempty"`
}

// Export renders one resume and streams the chosen artifact back.
func (h *Handlers) Export(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	resumeID, err := handlerutil.ExtractResumeID(c, userID, "Export", resumes.ErrResumeNotFound)
	if err != nil {
		return err
	}

	var req ExportRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Export"); err != nil {
		return err
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return httperr.InvalidInput(err)
	}

	// Reject unknown templates before touching the database.
	if req.Template != "" && !h.renderer.Known(req.Template) {
		return httperr.InvalidInput(render.ErrUnknownTemplate)
	}

	resume, err := h.resumesService.Get(c.Context(), userID, resumeID)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Export", userID, &resumeID, resumes.ErrResumeNotFound)
	}

	templateID := req.Template
	if templateID == "" {
		templateID = resume.Template
	}

	order := make([]sections.Type, 0, len(req.SectionOrder))
	for _, s := range req.SectionOrder {
		order = append(order, sections.Type(s))
	}

	html, err := h.renderer.Render(resume, order, templateID)
	if err != nil {
		if errors.Is(err, render.ErrUnknownTemplate) || errors.Is(err, sections.ErrUnknownSection) {
			return httperr.InvalidInput(err)
		}
		logger.L().Error("resume render failed", "handler", "Export", "userID", userID.Hex(), "resumeID", resumeID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	artifact, err := h.exporter.Export(c.Context(), html, format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return httperr.InvalidInput(err)
		}
		logger.L().Error("resume export failed", "handler", "Export", "userID", userID.Hex(), "resumeID", resumeID.Hex(), "format", string(format), "error", err)
		return httperr.Fail(httperr.InternalError("Export failed"))
	}

	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+artifact.Filename+`"`)
	return c.Send(artifact.Data)
}
