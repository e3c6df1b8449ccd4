package tasks

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/taskboard-demo/domain/task"
	"gorm.io/gorm"
)

// ErrDuplicateTag is returned when the owner already has a tag with the
// requested name.
var ErrDuplicateTag = errors.New("tag already exists")

// TagRepository handles tag persistence using GORM.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns the owner's tags ordered by name ascending.
func (r *TagRepository) List(ctx context.Context, userID string) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Create saves a new tag. Tag names are unique per owner; a second tag with
// the same (owner, name) pair fails with ErrDuplicateTag. Different owners
// may reuse the same name freely.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Tag{}).
		Where("user_id = ? AND name = ?", tag.UserID, tag.Name).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateTag
	}

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		// Backstop for a concurrent insert racing past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTag
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FindByIDs returns the owner's tags among the given ids. Ids that do not
// exist or belong to another user are silently dropped, so a task can never
// be associated with a tag outside its owner's set.
func (r *TagRepository) FindByIDs(ctx context.Context, userID string, ids []string) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	return tags, nil
}
