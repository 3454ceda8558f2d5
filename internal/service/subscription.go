package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// SubscriptionService maintains the user-to-user follow graph and derives
// the subscriptions feed from it.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Follow creates a follow edge. Self-follow is rejected before the target
// is even looked up; a duplicate edge maps to ErrAlreadyExists.
func (s *SubscriptionService) Follow(ctx context.Context, userID, targetID uuid.UUID) error {
	if userID == targetID {
		return types.ErrSelfFollow
	}

	var target models.User
	if err := s.db.WithContext(ctx).Select("id").First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrUserNotFound
		}
		return err
	}

	sub := models.Subscription{UserID: userID, AuthorID: targetID}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if isUniqueViolation(err) {
			return types.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *SubscriptionService) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, targetID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrRelationNotFound
	}
	return nil
}

// IsFollowing answers the is_subscribed flag; anonymous viewers get false.
func (s *SubscriptionService) IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowing returns one feed entry per followed author. recipesLimit,
// when positive, truncates each author's recipe list to that many most
// recent entries; RecipeCount always reflects the author's true total.
// Authors, counts and recipes are read in three batched queries.
func (s *SubscriptionService) ListFollowing(ctx context.Context, userID uuid.UUID, recipesLimit int) ([]types.AuthorFeed, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return []types.AuthorFeed{}, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		authorIDs = append(authorIDs, sub.AuthorID)
	}

	var totals []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	err = s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(totals))
	for _, row := range totals {
		counts[row.AuthorID] = row.Total
	}

	var recipes []models.Recipe
	err = s.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	briefsByAuthor := make(map[uuid.UUID][]types.RecipeBrief, len(subs))
	for _, r := range recipes {
		briefs := briefsByAuthor[r.AuthorID]
		if recipesLimit > 0 && len(briefs) >= recipesLimit {
			continue
		}
		briefsByAuthor[r.AuthorID] = append(briefs, types.RecipeBrief{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	feed := make([]types.AuthorFeed, 0, len(subs))
	for _, sub := range subs {
		briefs := briefsByAuthor[sub.AuthorID]
		if briefs == nil {
			briefs = []types.RecipeBrief{}
		}
		feed = append(feed, types.AuthorFeed{
			Author: types.UserView{
				ID:           sub.Author.ID,
				Username:     sub.Author.Username,
				Email:        sub.Author.Email,
				FirstName:    sub.Author.FirstName,
				LastName:     sub.Author.LastName,
				IsSubscribed: true,
			},
			Recipes:     briefs,
			RecipeCount: counts[sub.AuthorID],
		})
	}
	return feed, nil
}

// FollowedIDs returns the set of author ids the user follows, so list views
// can resolve is_subscribed for many users in one query.
func (s *SubscriptionService) FollowedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	followed := make(map[uuid.UUID]bool)
	if userID == uuid.Nil {
		return followed, nil
	}
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}
