package handler

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/service/attachment"
	"complaint-desk/internal/service/complaint"
)

const attachmentsField = "files"

type ComplaintHandler struct {
	complaintService complaint.Service
}

func NewComplaintHandler(complaintService complaint.Service) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	var files []attachment.Upload
	if form, err := c.MultipartForm(); err == nil {
		defer func() {
			_ = form.RemoveAll()
		}()
		files = uploads(form.File[attachmentsField])
	}

	result, err := h.complaintService.Create(c.Context(), identity, input, files)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	complaints, err := h.complaintService.List(c.Context(), identity)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(complaints)
}

func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "complaint")
	if err != nil {
		return err
	}

	view, err := h.complaintService.Get(c.Context(), identity, id)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *ComplaintHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "complaint")
	if err != nil {
		return err
	}

	var input domain.UpdateComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.complaintService.Update(c.Context(), identity, id, input)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Complaint updated successfully",
		"complaint": updated,
	})
}

func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "complaint")
	if err != nil {
		return err
	}

	if err := h.complaintService.Delete(c.Context(), identity, id); err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Complaint deleted successfully",
	})
}

func uploads(headers []*multipart.FileHeader) []attachment.Upload {
	files := make([]attachment.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, attachment.Upload{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}
