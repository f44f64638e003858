package notifications

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// LogSinkImpl implements domain.NotificationSink by writing structured log
// entries. It stands in for the device-local notification channel in
// headless runs.
type LogSinkImpl struct {
	log *logrus.Logger
}

// NewLogSink creates a logrus-backed sink.
func NewLogSink(log *logrus.Logger) domain.NotificationSink {
	return &LogSinkImpl{log: log}
}

// Notify implements domain.NotificationSink.
func (s *LogSinkImpl) Notify(ctx context.Context, notification domain.Notification) error {
	s.log.WithFields(logrus.Fields{
		"notification_id": notification.ID,
		"title":           notification.Title,
	}).Info(notification.Body)
	return nil
}
