package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages. The author is always the session
// user.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.CreateMessage(c.Context(), service.CreateMessageInput{
		UserID: sessionUserID(c),
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

// GetMessage handles GET /api/messages/:id. Public; a logged-in viewer also
// gets their liked flag.
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	message, err := s.messageService.GetMessage(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}

// DeleteMessage handles DELETE /api/messages/:id. Author only.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.DeleteMessage(c.Context(), service.DeleteMessageInput{
		UserID:    sessionUserID(c),
		MessageID: id,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Message deleted",
	})
}

// LikeMessage handles POST /api/messages/:id/like
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.LikeMessage(c.Context(), sessionUserID(c), id)
	if err != nil {
		middleware.LikeMutations.WithLabelValues("like", "rejected").Inc()
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.LikeMutations.WithLabelValues("like", "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

// UnlikeMessage handles DELETE /api/messages/:id/like
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.UnlikeMessage(c.Context(), sessionUserID(c), id)
	if err != nil {
		middleware.LikeMutations.WithLabelValues("unlike", "rejected").Inc()
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.LikeMutations.WithLabelValues("unlike", "ok").Inc()
	return c.JSON(fiber.Map{
		"message": message,
	})
}
