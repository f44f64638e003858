package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/koswara-dev/BarayaApp-sub000/internal/config"
)

// Run wires the container, restores any persisted session and polls the
// notification feed until the process is signalled to stop.
func Run(cfg *config.Config) error {
	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := container.SessionSvc.CheckAuth(ctx); err != nil {
		container.Log.WithError(err).Warn("session restore failed")
	}
	if session := container.SessionSvc.Current(); session.Authenticated() {
		container.Log.WithField("user_id", session.Identity.UserID).Info("session restored")
		if err := container.ReportSvc.FetchActiveReport(ctx, session.Identity.UserID); err != nil {
			container.Log.WithError(err).Warn("initial report fetch failed")
		}
	} else {
		container.Log.Info("no persisted session, starting signed out")
	}

	container.Log.Info("notification relay started")
	container.Relay.Run(ctx)
	return nil
}
