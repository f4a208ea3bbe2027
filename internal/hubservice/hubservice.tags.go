package hubservice

import (
	"context"

	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// EnsureTag returns the tag registered under externalID, creating it on first
// contact.
func (s *HubService) EnsureTag(ctx context.Context, externalID, name string) (*models.Tag, error) {
	if externalID == "" {
		return nil, errors.NewValidationError("tag external id is required", nil)
	}

	tag, err := s.Tags.EnsureTag(ctx, externalID, name)
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[HubService] Ensured tag %d (%s)", tag.ID, tag.ExternalID)
	return tag, nil
}

// GetTags returns all known tags
func (s *HubService) GetTags(ctx context.Context) ([]*models.Tag, error) {
	return s.Tags.GetTags(ctx)
}

// GetTag returns one tag by its internal identifier
func (s *HubService) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	return s.Tags.Get(ctx, id)
}

// RenameTag updates a tag's display name
func (s *HubService) RenameTag(ctx context.Context, id int64, name string) error {
	if name == "" {
		return errors.NewValidationError("tag name is required", nil)
	}
	if err := s.Tags.Rename(ctx, id, name); err != nil {
		return err
	}
	s.invalidateStatus(ctx, id)
	return nil
}
