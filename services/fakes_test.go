package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petplan/backend/database/models"
	"github.com/petplan/backend/database/repositories"
)

// In-memory repository fakes. Each records enough to assert on persisted
// state and can be primed with a failure for the error paths.

type fakeTaskRepo struct {
	tasks map[string]*models.Task
	err   error
}

func newFakeTaskRepo(tasks ...*models.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[string]*models.Task)}
	for _, task := range tasks {
		repo.tasks[task.ID] = task
	}
	return repo
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	if r.err != nil {
		return r.err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*models.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "task", ID: id}
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) GetByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	var tasks []*models.Task
	for _, task := range r.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if r.err != nil {
		return r.err
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CompleteIfPending(_ context.Context, id string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	task, ok := r.tasks[id]
	if !ok || task.Status != models.TaskStatusPending {
		return false, nil
	}
	task.Status = models.TaskStatusDone
	return true, nil
}

type fakePetRepo struct {
	pets map[string]*models.Pet // keyed by user id
	err  error
}

func newFakePetRepo(pets ...*models.Pet) *fakePetRepo {
	repo := &fakePetRepo{pets: make(map[string]*models.Pet)}
	for _, pet := range pets {
		repo.pets[pet.UserID] = pet
	}
	return repo
}

func (r *fakePetRepo) Create(_ context.Context, pet *models.Pet) error {
	if r.err != nil {
		return r.err
	}
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}
	r.pets[pet.UserID] = pet
	return nil
}

func (r *fakePetRepo) GetByUserID(_ context.Context, userID string) (*models.Pet, error) {
	if r.err != nil {
		return nil, r.err
	}
	pet, ok := r.pets[userID]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "pet", ID: userID}
	}
	copied := *pet
	return &copied, nil
}

func (r *fakePetRepo) Update(_ context.Context, pet *models.Pet) error {
	if r.err != nil {
		return r.err
	}
	r.pets[pet.UserID] = pet
	return nil
}

type fakeBadgeRepo struct {
	catalog map[string]*models.Badge // keyed by badge key
	awarded map[string][]*models.UserBadge
	err     error
}

func newFakeBadgeRepo(badges ...*models.Badge) *fakeBadgeRepo {
	repo := &fakeBadgeRepo{
		catalog: make(map[string]*models.Badge),
		awarded: make(map[string][]*models.UserBadge),
	}
	for _, badge := range badges {
		repo.catalog[badge.Key] = badge
	}
	return repo
}

func (r *fakeBadgeRepo) GetByKeys(_ context.Context, keys []string) ([]*models.Badge, error) {
	if r.err != nil {
		return nil, r.err
	}
	var badges []*models.Badge
	for _, key := range keys {
		if badge, ok := r.catalog[key]; ok {
			badges = append(badges, badge)
		}
	}
	return badges, nil
}

func (r *fakeBadgeRepo) GetAwardedBadgeIDs(_ context.Context, userID string, badgeIDs []string) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := make(map[string]struct{}, len(badgeIDs))
	for _, id := range badgeIDs {
		wanted[id] = struct{}{}
	}
	var ids []string
	for _, award := range r.awarded[userID] {
		if _, ok := wanted[award.BadgeID]; ok {
			ids = append(ids, award.BadgeID)
		}
	}
	return ids, nil
}

func (r *fakeBadgeRepo) Award(_ context.Context, awards []*models.UserBadge) error {
	if r.err != nil {
		return r.err
	}
	for _, award := range awards {
		for _, held := range r.awarded[award.UserID] {
			if held.BadgeID == award.BadgeID {
				return errors.New("duplicate user_badge row")
			}
		}
		r.awarded[award.UserID] = append(r.awarded[award.UserID], award)
	}
	return nil
}

func (r *fakeBadgeRepo) GetAwardedByUserID(_ context.Context, userID string) ([]*models.UserBadge, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.awarded[userID], nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex // badge awarding appends concurrently
	entries []*models.Activity
	err     error
}

func (r *fakeActivityRepo) Append(_ context.Context, entry *models.Activity) error {
	if r.err != nil {
		return r.err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeActivityRepo) GetRecentByUserID(_ context.Context, userID string, limit int) ([]*models.Activity, error) {
	if r.err != nil {
		return nil, r.err
	}
	var entries []*models.Activity
	for i := len(r.entries) - 1; i >= 0 && len(entries) < limit; i-- {
		if r.entries[i].UserID == userID {
			entries = append(entries, r.entries[i])
		}
	}
	return entries, nil
}

func (r *fakeActivityRepo) byType(typ models.ActivityType) []*models.Activity {
	var entries []*models.Activity
	for _, entry := range r.entries {
		if entry.Type == typ {
			entries = append(entries, entry)
		}
	}
	return entries
}

// testCatalog returns the full badge catalog as the seeder creates it.
func testCatalog() []*models.Badge {
	keys := []string{"streak_3", "streak_7", "streak_30", "lvl_5", "lvl_10", "early_bird", "night_owl"}
	badges := make([]*models.Badge, 0, len(keys))
	for _, key := range keys {
		badges = append(badges, &models.Badge{ID: "badge-" + key, Key: key, Name: key, Icon: "x"})
	}
	return badges
}
