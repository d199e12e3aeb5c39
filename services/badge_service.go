package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/petplan/backend/database/models"
	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/gamification"
)

const badgeCacheSize = 32

// AwardedBadge is one newly-earned badge in an award response.
type AwardedBadge struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// BadgeService turns a streak/level/completion-time triple into newly-awarded
// badges. A (user, badge) pair is only ever awarded once; calling Award again
// with the same inputs yields an empty result.
type BadgeService struct {
	badges   repositories.BadgeRepository
	activity repositories.ActivityRepository
	calc     *gamification.Calculator
	catalog  *lru.Cache // badge key -> *models.Badge
}

func NewBadgeService(
	badges repositories.BadgeRepository,
	activity repositories.ActivityRepository,
	calc *gamification.Calculator,
) *BadgeService {
	// Size only needs to cover the static catalog.
	cache, _ := lru.New(badgeCacheSize)
	return &BadgeService{
		badges:   badges,
		activity: activity,
		calc:     calc,
		catalog:  cache,
	}
}

func (s *BadgeService) Award(ctx context.Context, userID string, streak, level int, completedAt time.Time) ([]AwardedBadge, error) {
	candidates := s.calc.AwardCandidates(streak, level, completedAt)
	if len(candidates) == 0 {
		return nil, nil
	}

	rows, err := s.resolveCatalog(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	badgeIDs := make([]string, 0, len(rows))
	for _, badge := range rows {
		badgeIDs = append(badgeIDs, badge.ID)
	}
	existingIDs, err := s.badges.GetAwardedBadgeIDs(ctx, userID, badgeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load awarded badges: %w", err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	var newBadges []*models.Badge
	for _, badge := range rows {
		if _, held := existing[badge.ID]; !held {
			newBadges = append(newBadges, badge)
		}
	}
	if len(newBadges) == 0 {
		return nil, nil
	}

	awards := make([]*models.UserBadge, 0, len(newBadges))
	for _, badge := range newBadges {
		awards = append(awards, &models.UserBadge{
			UserID:    userID,
			BadgeID:   badge.ID,
			AwardedAt: completedAt,
		})
	}
	if err := s.badges.Award(ctx, awards); err != nil {
		return nil, fmt.Errorf("failed to persist badge awards: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, badge := range newBadges {
		badge := badge
		g.Go(func() error {
			return s.activity.Append(gctx, &models.Activity{
				UserID: userID,
				Type:   models.ActivityBadge,
				Meta:   map[string]any{"badge": badge.Key},
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to log badge activity: %w", err)
	}

	awarded := make([]AwardedBadge, 0, len(newBadges))
	for _, badge := range newBadges {
		awarded = append(awarded, AwardedBadge{ID: badge.ID, Key: badge.Key, Name: badge.Name})
	}

	slog.Info("Badges awarded",
		slog.String("type", "sys"),
		slog.String("user_id", userID),
		slog.Int("count", len(awarded)))

	return awarded, nil
}

// resolveCatalog maps candidate keys to catalog rows, keeping the static
// catalog in an in-process cache so repeated completions skip the lookup.
func (s *BadgeService) resolveCatalog(ctx context.Context, keys []gamification.BadgeKey) ([]*models.Badge, error) {
	var (
		rows    []*models.Badge
		missing []string
	)
	for _, key := range keys {
		if cached, ok := s.catalog.Get(string(key)); ok {
			rows = append(rows, cached.(*models.Badge))
			continue
		}
		missing = append(missing, string(key))
	}
	if len(missing) == 0 {
		return rows, nil
	}

	fetched, err := s.badges.GetByKeys(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve badge catalog: %w", err)
	}
	for _, badge := range fetched {
		s.catalog.Add(badge.Key, badge)
		rows = append(rows, badge)
	}
	return rows, nil
}
