package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. The session user is always
// the follower.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.Context(), sessionUserID(c), targetID); err != nil {
		middleware.FollowMutations.WithLabelValues("follow", "rejected").Inc()
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.FollowMutations.WithLabelValues("follow", "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Following",
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), sessionUserID(c), targetID); err != nil {
		middleware.FollowMutations.WithLabelValues("unfollow", "rejected").Inc()
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.FollowMutations.WithLabelValues("unfollow", "ok").Inc()
	return c.JSON(fiber.Map{
		"message": "Unfollowed",
	})
}
