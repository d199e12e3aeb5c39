package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petplan/backend/database/models"
	"github.com/petplan/backend/database/repositories"
)

// In-memory repositories for endpoint tests. They implement just enough of
// the store contract for the handlers to run against.

type memTaskRepo struct {
	tasks map[string]*models.Task
	err   error
}

func newMemTaskRepo(tasks ...*models.Task) *memTaskRepo {
	repo := &memTaskRepo{tasks: make(map[string]*models.Task)}
	for _, task := range tasks {
		repo.tasks[task.ID] = task
	}
	return repo
}

func (r *memTaskRepo) Create(_ context.Context, task *models.Task) error {
	if r.err != nil {
		return r.err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Status = models.TaskStatusPending
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*models.Task, error) {
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

func (r *memTaskRepo) GetByUserID(_ context.Context, userID string) ([]*models.Task, error) {
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

func (r *memTaskRepo) Update(_ context.Context, task *models.Task) error {
	if r.err != nil {
		return r.err
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) CompleteIfPending(_ context.Context, id string) (bool, error) {
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

type memPetRepo struct {
	pets map[string]*models.Pet
	err  error
}

func newMemPetRepo(pets ...*models.Pet) *memPetRepo {
	repo := &memPetRepo{pets: make(map[string]*models.Pet)}
	for _, pet := range pets {
		repo.pets[pet.UserID] = pet
	}
	return repo
}

func (r *memPetRepo) Create(_ context.Context, pet *models.Pet) error {
	if r.err != nil {
		return r.err
	}
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}
	r.pets[pet.UserID] = pet
	return nil
}

func (r *memPetRepo) GetByUserID(_ context.Context, userID string) (*models.Pet, error) {
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

func (r *memPetRepo) Update(_ context.Context, pet *models.Pet) error {
	if r.err != nil {
		return r.err
	}
	r.pets[pet.UserID] = pet
	return nil
}

type memBadgeRepo struct {
	catalog map[string]*models.Badge
	awarded map[string][]*models.UserBadge
	err     error
}

func newMemBadgeRepo() *memBadgeRepo {
	repo := &memBadgeRepo{
		catalog: make(map[string]*models.Badge),
		awarded: make(map[string][]*models.UserBadge),
	}
	for _, key := range []string{"streak_3", "streak_7", "streak_30", "lvl_5", "lvl_10", "early_bird", "night_owl"} {
		repo.catalog[key] = &models.Badge{ID: "badge-" + key, Key: key, Name: key, Icon: "x"}
	}
	return repo
}

func (r *memBadgeRepo) GetByKeys(_ context.Context, keys []string) ([]*models.Badge, error) {
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

func (r *memBadgeRepo) GetAwardedBadgeIDs(_ context.Context, userID string, badgeIDs []string) ([]string, error) {
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

func (r *memBadgeRepo) Award(_ context.Context, awards []*models.UserBadge) error {
	if r.err != nil {
		return r.err
	}
	for _, award := range awards {
		r.awarded[award.UserID] = append(r.awarded[award.UserID], award)
	}
	return nil
}

func (r *memBadgeRepo) GetAwardedByUserID(_ context.Context, userID string) ([]*models.UserBadge, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.awarded[userID], nil
}

type memActivityRepo struct {
	mu      sync.Mutex
	entries []*models.Activity
	err     error
}

func (r *memActivityRepo) Append(_ context.Context, entry *models.Activity) error {
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

func (r *memActivityRepo) GetRecentByUserID(_ context.Context, userID string, limit int) ([]*models.Activity, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*models.Activity
	for i := len(r.entries) - 1; i >= 0 && len(entries) < limit; i-- {
		if r.entries[i].UserID == userID {
			entries = append(entries, r.entries[i])
		}
	}
	return entries, nil
}
