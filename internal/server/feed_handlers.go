package server

import (
	"codenest/internal/models"
	"codenest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed?tab=trend|latest|following
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	posts, err := s.feedService.ComposeFeed(c.Context(), service.ComposeFeedInput{
		Tab:      c.Query("tab"),
		ViewerID: viewerID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetFeatureFlags handles GET /api/flags: the evaluated flag set for the
// authenticated user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return c.JSON(s.featureFlags.Snapshot(userID))
}
