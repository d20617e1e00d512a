package server

import (
	"codenest/internal/models"
	"codenest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	return s.toggle(c, models.EngagementLike, "is_liked")
}

// ToggleBookmark handles POST /api/posts/:id/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	return s.toggle(c, models.EngagementBookmark, "is_bookmarked")
}

// ToggleFollow handles POST /api/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	return s.toggle(c, models.EngagementFollow, "is_following")
}

// toggle runs the shared flow for the engagement handlers and responds with
// the new state under the given field name.
func (s *Server) toggle(c *fiber.Ctx, kind models.EngagementKind, field string) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.engagementService.Toggle(c.Context(), service.ToggleInput{
		Kind:     kind,
		ActorID:  userID,
		TargetID: targetID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{field: state, "message": toggleMessage(kind, state)})
}

func toggleMessage(kind models.EngagementKind, state bool) string {
	switch kind {
	case models.EngagementLike:
		if state {
			return "Post liked"
		}
		return "Like removed"
	case models.EngagementBookmark:
		if state {
			return "Post bookmarked"
		}
		return "Bookmark removed"
	default:
		if state {
			return "User followed"
		}
		return "User unfollowed"
	}
}
