package results

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"result-portal/app/services"
)

// Handler owns the result lookup and CRUD endpoints.
type Handler struct {
	Lookup    *services.LookupService
	Mutations *services.MutationService
}

func NewHandler(lookup *services.LookupService, mutations *services.MutationService) *Handler {
	return &Handler{Lookup: lookup, Mutations: mutations}
}

func (h *Handler) LookupAPI(c *fiber.Ctx) error {
	type LookupRequest struct {
		RollNumber string `json:"rollNumber" form:"rollNumber"`
		Name       string `json:"name" form:"name"`
	}

	var req LookupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Both roll number and name are required"})
	}

	student, err := h.Lookup.FindResult(req.RollNumber, req.Name, c.IP())
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"student": student})
	case errors.Is(err, services.ErrRateLimited):
		return c.Status(429).JSON(fiber.Map{"message": "Too many requests, please try again later"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"message": "Both roll number and name are required"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "No student found with matching roll number and name"})
	default:
		log.Printf("Error fetching student result: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
}

func (h *Handler) ListResultsAPI(c *fiber.Ctx) error {
	students, err := h.Mutations.ListResults()
	if err != nil {
		log.Printf("Error fetching student results: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"student": students})
}

func (h *Handler) GetResultAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Student result ID is required"})
	}

	student, err := h.Mutations.GetResult(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Student result not found"})
		}
		log.Printf("Error fetching student result %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.JSON(student)
}

func (h *Handler) CreateResultAPI(c *fiber.Ctx) error {
	rollNumber, err := strconv.Atoi(c.FormValue("rollNumber"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Roll number and marks must be valid numbers"})
	}
	marks, err := strconv.Atoi(c.FormValue("marks"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Roll number and marks must be valid numbers"})
	}

	name := c.FormValue("name")
	fileHeader, err := c.FormFile("resultImage")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Roll number, name, marks, and image are required"})
	}

	image, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded image"})
	}

	cmd := services.CreateResultCommand{
		RollNumber: rollNumber,
		Name:       name,
		Marks:      marks,
		Image:      image,
	}

	_, err = h.Mutations.CreateResult(c.Context(), cmd)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Student data saved"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": "Roll number, name, marks, and image are required"})
	case errors.Is(err, services.ErrDuplicateRollNumber):
		return c.Status(409).JSON(fiber.Map{"error": "A result with this roll number already exists"})
	default:
		log.Printf("Error in upload handler: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to upload student data"})
	}
}

func (h *Handler) UpdateResultAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Student ID is missing"})
	}

	cmd := services.UpdateResultCommand{ID: id}

	if v := c.FormValue("rollNumber"); v != "" {
		roll, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Roll number must be a valid number"})
		}
		cmd.RollNumber = &roll
	}
	if v := c.FormValue("name"); v != "" {
		cmd.Name = &v
	}
	if v := c.FormValue("marks"); v != "" {
		marks, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Marks must be a valid number"})
		}
		cmd.Marks = &marks
	}

	if fileHeader, err := c.FormFile("resultImage"); err == nil {
		image, err := readUpload(fileHeader)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Failed to read uploaded image"})
		}
		cmd.Image = image
	}

	student, err := h.Mutations.UpdateResult(c.Context(), cmd)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"message":       "Student result updated successfully",
			"studentResult": student,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "Student result not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"message": "Invalid field values"})
	case errors.Is(err, services.ErrDuplicateRollNumber):
		return c.Status(409).JSON(fiber.Map{"message": "A result with this roll number already exists"})
	default:
		log.Printf("Error updating student result %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"message": "Error updating student result"})
	}
}

func (h *Handler) DeleteResultAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Student result ID is required"})
	}

	err := h.Mutations.DeleteResult(c.Context(), id)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Student result deleted successfully"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "Student result not found"})
	default:
		log.Printf("Error deleting student result %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting student result"})
	}
}

func readUpload(fileHeader *multipart.FileHeader) (*services.UploadedImage, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	return &services.UploadedImage{
		Data:        data,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
