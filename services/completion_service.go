package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/petplan/backend/calendar"
	"github.com/petplan/backend/database/models"
	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/gamification"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotTaskOwner    = errors.New("task belongs to another user")
	ErrTaskAlreadyDone = errors.New("task already completed")
)

// CompletionResult is the committed state returned to the caller.
type CompletionResult struct {
	Task *models.Task `json:"task"`
	Pet  *models.Pet  `json:"pet"`
}

// badgeAwarder is the downstream badge step. It is best-effort: a failure
// here never fails the completion.
type badgeAwarder interface {
	Award(ctx context.Context, userID string, streak, level int, completedAt time.Time) ([]AwardedBadge, error)
}

// CompletionService runs the task-completion workflow: mark the task DONE,
// advance the pet's streak/xp/level, log activity, then hand off to badge
// awarding.
type CompletionService struct {
	tasks    repositories.TaskRepository
	pets     repositories.PetRepository
	activity repositories.ActivityRepository
	badges   badgeAwarder
	calc     *gamification.Calculator
}

func NewCompletionService(
	tasks repositories.TaskRepository,
	pets repositories.PetRepository,
	activity repositories.ActivityRepository,
	badges badgeAwarder,
	calc *gamification.Calculator,
) *CompletionService {
	return &CompletionService{
		tasks:    tasks,
		pets:     pets,
		activity: activity,
		badges:   badges,
		calc:     calc,
	}
}

// Complete marks the task DONE on behalf of userID and applies the resulting
// pet state transition. The status flip is conditional on the task still
// being PENDING, so a concurrent duplicate request can win the race at most
// once; the loser gets ErrTaskAlreadyDone and mutates nothing.
func (s *CompletionService) Complete(ctx context.Context, taskID, userID string, now time.Time) (*CompletionResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	done, err := s.tasks.CompleteIfPending(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	if !done {
		return nil, ErrTaskAlreadyDone
	}
	task.Status = models.TaskStatusDone

	pet, err := s.pets.GetByUserID(ctx, userID)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load pet: %w", err)
	}
	if repositories.IsNotFound(err) {
		pet = nil
	}

	var (
		oldXP     int64
		oldLevel  = 1
		oldStreak int
		lastClaim *time.Time
	)
	if pet != nil {
		oldXP = pet.XP
		oldLevel = pet.Level
		oldStreak = pet.StreakDays
		lastClaim = pet.LastClaimDay()
	}

	doneToday := lastClaim != nil && calendar.IsSameDay(*lastClaim, now)
	streak := s.calc.NextStreak(lastClaim, now, doneToday, oldStreak)
	xp := oldXP + s.calc.XPPerTask()
	level := s.calc.Level(xp)

	if pet == nil {
		pet = &models.Pet{
			UserID:     userID,
			XP:         xp,
			Level:      level,
			StreakDays: streak,
			LastClaim:  calendar.FormatDay(now),
		}
		if err := s.pets.Create(ctx, pet); err != nil {
			return nil, fmt.Errorf("failed to create pet: %w", err)
		}
	} else {
		pet.XP = xp
		pet.Level = level
		pet.StreakDays = streak
		pet.LastClaim = calendar.FormatDay(now)
		if err := s.pets.Update(ctx, pet); err != nil {
			return nil, fmt.Errorf("failed to update pet: %w", err)
		}
	}

	if err := s.appendActivity(ctx, userID, models.ActivityTaskDone, map[string]any{"task_id": task.ID}); err != nil {
		return nil, err
	}
	if streak > oldStreak {
		if err := s.appendActivity(ctx, userID, models.ActivityStreakUp, map[string]any{"streak": streak}); err != nil {
			return nil, err
		}
	}
	if level > oldLevel {
		if err := s.appendActivity(ctx, userID, models.ActivityLevelUp, map[string]any{"level": level}); err != nil {
			return nil, err
		}
	}

	// Badge awarding is downstream of the committed completion. Its failure
	// must not surface as a failed completion.
	if s.badges != nil {
		if _, err := s.badges.Award(ctx, userID, streak, level, now); err != nil {
			slog.Warn("Badge awarding failed after completion",
				slog.String("type", "sys"),
				slog.String("user_id", userID),
				slog.String("task_id", task.ID),
				slog.Any("error", err))
		}
	}

	return &CompletionResult{Task: task, Pet: pet}, nil
}

func (s *CompletionService) appendActivity(ctx context.Context, userID string, typ models.ActivityType, meta map[string]any) error {
	err := s.activity.Append(ctx, &models.Activity{
		UserID: userID,
		Type:   typ,
		Meta:   meta,
	})
	if err != nil {
		return fmt.Errorf("failed to append %s activity: %w", typ, err)
	}
	return nil
}
