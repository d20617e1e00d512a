package service

import (
	"context"

	"codenest/internal/middleware"
	"codenest/internal/models"
	"codenest/internal/notifications"
	"codenest/internal/observability"
	"codenest/internal/repository"
)

type EngagementService struct {
	engRepo  repository.EngagementRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

type ToggleInput struct {
	Kind     models.EngagementKind
	ActorID  uint
	TargetID uint
}

func NewEngagementService(
	engRepo repository.EngagementRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *EngagementService {
	return &EngagementService{
		engRepo:  engRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Toggle flips the engagement edge and returns its new state. The operation
// is anchored on current persisted state, so repeating a request converges
// instead of erroring: toggling an already-toggled edge just flips it back.
func (s *EngagementService) Toggle(ctx context.Context, in ToggleInput) (bool, error) {
	ownerID, err := s.checkTarget(ctx, in)
	if err != nil {
		return false, err
	}

	exists, err := s.engRepo.Exists(ctx, in.Kind, in.ActorID, in.TargetID)
	if err != nil {
		return false, err
	}

	var newState bool
	if exists {
		if _, err := s.engRepo.Remove(ctx, in.Kind, in.ActorID, in.TargetID); err != nil {
			return false, err
		}
		newState = false
	} else {
		// Add reports false when a concurrent request inserted the edge
		// first. Either way the edge is now on.
		if _, err := s.engRepo.Add(ctx, in.Kind, in.ActorID, in.TargetID); err != nil {
			return false, err
		}
		newState = true
	}

	state := "off"
	if newState {
		state = "on"
	}
	observability.EngagementToggles.WithLabelValues(string(in.Kind), state).Inc()

	if newState && ownerID != in.ActorID {
		if err := s.notifier.PublishEngagement(ctx, in.Kind, in.ActorID, ownerID); err != nil {
			middleware.Logger.Warn("failed to publish engagement event",
				"kind", in.Kind, "actor_id", in.ActorID, "error", err)
		}
	}
	return newState, nil
}

// checkTarget validates the toggle target and returns the user the resulting
// notification belongs to.
func (s *EngagementService) checkTarget(ctx context.Context, in ToggleInput) (uint, error) {
	switch in.Kind {
	case models.EngagementLike, models.EngagementBookmark:
		post, err := s.postRepo.GetByID(ctx, in.TargetID)
		if err != nil {
			return 0, err
		}
		// drafts are invisible to everyone but their author
		if post.IsDraft && post.UserID != in.ActorID {
			return 0, models.NewNotFoundError("Post", in.TargetID)
		}
		return post.UserID, nil
	case models.EngagementFollow:
		if in.ActorID == in.TargetID {
			return 0, models.NewSelfReferenceError("you cannot follow yourself")
		}
		ok, err := s.userRepo.Exists(ctx, in.TargetID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, models.NewNotFoundError("User", in.TargetID)
		}
		return in.TargetID, nil
	default:
		return 0, models.NewValidationError("unknown engagement kind")
	}
}
