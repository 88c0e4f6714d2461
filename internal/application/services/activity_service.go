package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// ActivityService appends audit and analytics records. Both writes are
// fire-and-forget from the caller's perspective: storage failures are
// logged, never propagated, so no user-facing operation ever fails on a
// missing audit row.
type ActivityService struct {
	activityRepo  ports.ActivityRepository
	analyticsRepo ports.AnalyticsRepository
	logger        *logrus.Logger
}

func NewActivityService(activityRepo ports.ActivityRepository, analyticsRepo ports.AnalyticsRepository, logger *logrus.Logger) ports.ActivityRecorder {
	return &ActivityService{
		activityRepo:  activityRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

func (s *ActivityService) LogActivity(ctx context.Context, ownerEmail, action, details, realmName string) {
	entry := &activity.Entry{
		ID:         uuid.New(),
		OwnerEmail: ownerEmail,
		Action:     action,
		Details:    details,
		RealmName:  realmName,
		Timestamp:  time.Now(),
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"owner":  ownerEmail,
			"action": action,
		}).Warn("Failed to append activity entry")
	}
}

func (s *ActivityService) TrackEvent(ctx context.Context, realmName, eventType string, metadata map[string]any) {
	event := &activity.Event{
		ID:        uuid.New(),
		RealmName: realmName,
		EventType: eventType,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
	if err := s.analyticsRepo.Track(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"realm": realmName,
			"event": eventType,
		}).Warn("Failed to track analytics event")
	}
}
