package services

import (
	"context"
	"fmt"
	"time"

	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/notify"
	"belakoo-backend-go/internal/store"
)

const lessonCompletedTitle = "Lesson Completed"

// LessonService handles volunteer completion and admin verification.
type LessonService struct {
	store    store.Store
	notifier notify.Notifier
	hub      *ActivityHub
	log      *logger.Logger

	Now func() time.Time
}

func NewLessonService(st store.Store, notifier notify.Notifier, hub *ActivityHub, log *logger.Logger) *LessonService {
	return &LessonService{
		store:    st,
		notifier: notifier,
		hub:      hub,
		log:      log,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// MarkDone records who completed the lesson and tells every admin with a
// push token. Notification failures are logged only.
func (s *LessonService) MarkDone(ctx context.Context, userID, ref string) (models.Lesson, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.Lesson{}, fromStore(err, "User")
	}
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return models.Lesson{}, err
	}
	now := s.Now()
	lesson.IsDone = true
	lesson.CompletedBy = &user.ID
	lesson.CompletedAt = &now
	if err := s.store.UpdateLesson(ctx, &lesson); err != nil {
		return models.Lesson{}, fromStore(err, "Lesson")
	}
	s.log.Info("lesson marked done", "lesson_code", lesson.Code, "user_id", user.ID)

	s.notifyAdmins(ctx, lesson, user)
	s.hub.Broadcast(ActivityEvent{
		Type:       EventLessonDone,
		LessonID:   lesson.ID,
		LessonCode: lesson.Code,
		UserID:     user.ID,
		UserName:   user.Name,
	})
	return lesson, nil
}

// MarkNotDone clears the completion flag only.
func (s *LessonService) MarkNotDone(ctx context.Context, userID, ref string) (models.Lesson, error) {
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return models.Lesson{}, err
	}
	lesson.IsDone = false
	if err := s.store.UpdateLesson(ctx, &lesson); err != nil {
		return models.Lesson{}, fromStore(err, "Lesson")
	}
	s.log.Info("lesson marked not done", "lesson_code", lesson.Code, "user_id", userID)
	s.hub.Broadcast(ActivityEvent{
		Type:       EventLessonNotDone,
		LessonID:   lesson.ID,
		LessonCode: lesson.Code,
		UserID:     userID,
	})
	return lesson, nil
}

// Verify sets the verification flag; verifying also marks the lesson done.
func (s *LessonService) Verify(ctx context.Context, adminID, ref string, verified bool) (models.Lesson, error) {
	lesson, err := findLesson(ctx, s.store, ref)
	if err != nil {
		return models.Lesson{}, err
	}
	lesson.Verified = verified
	if verified {
		lesson.IsDone = true
	}
	if err := s.store.UpdateLesson(ctx, &lesson); err != nil {
		return models.Lesson{}, fromStore(err, "Lesson")
	}
	s.log.Info("lesson verification changed", "lesson_code", lesson.Code, "verified", verified, "admin_id", adminID)
	s.hub.Broadcast(ActivityEvent{
		Type:       EventLessonVerified,
		LessonID:   lesson.ID,
		LessonCode: lesson.Code,
		UserID:     adminID,
		Payload:    map[string]bool{"verified": verified},
	})
	return lesson, nil
}

func (s *LessonService) notifyAdmins(ctx context.Context, lesson models.Lesson, by models.User) {
	if s.notifier == nil {
		return
	}
	admins, err := s.store.ListUsers(ctx, models.RoleAdmin)
	if err != nil {
		s.log.Error("list admins for notification", "error", err)
		return
	}
	body := fmt.Sprintf("%s has completed lesson: %s", by.Name, lesson.Name)
	for _, admin := range admins {
		if admin.PushToken == nil || *admin.PushToken == "" {
			continue
		}
		err := s.notifier.Notify(ctx, notify.Notification{
			UserID: admin.ID,
			Token:  *admin.PushToken,
			Title:  lessonCompletedTitle,
			Body:   body,
			Data: map[string]any{
				"lesson_id":    lesson.ID,
				"lesson_code":  lesson.Code,
				"completed_by": by.ID,
			},
		})
		if err != nil {
			s.log.Warn("admin notification failed", "admin_id", admin.ID, "lesson_code", lesson.Code, "error", err)
		}
	}
}
