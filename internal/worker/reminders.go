// Package worker runs the background reminder check alongside the
// server.
package worker

import (
	"context"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/log"
	"fintrack/internal/settings"
)

// ReminderNotifier periodically surfaces due reminders while the
// notifyReminders preference is on.
type ReminderNotifier struct {
	settings *settings.Service
	interval time.Duration
	logger   *log.Logger

	// notified tracks ids already surfaced this run so a reminder is
	// logged once per process.
	notified map[int64]struct{}
}

func NewReminderNotifier(st *settings.Service, interval time.Duration, logger *log.Logger) *ReminderNotifier {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ReminderNotifier{
		settings: st,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentWorker),
		notified: make(map[int64]struct{}),
	}
}

// Run ticks until the context is cancelled. It always returns nil on
// cancellation so it composes with an errgroup shutdown.
func (n *ReminderNotifier) Run(ctx context.Context) error {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n.check(ctx)
		}
	}
}

func (n *ReminderNotifier) check(ctx context.Context) {
	enabled, err := n.settings.BoolPreference(ctx, kv.KeyNotifyReminders)
	if err != nil {
		n.logger.WarnContext(ctx, "Reminder preference read failed", log.FieldError, err)
		return
	}
	if !enabled {
		return
	}

	reminders, err := n.settings.Reminders(ctx)
	if err != nil {
		n.logger.WarnContext(ctx, "Reminder load failed", log.FieldError, err)
		return
	}

	today := core.DayOf(time.Now())
	for _, reminder := range reminders {
		if reminder.Completed || reminder.Date.After(today.Time) {
			continue
		}
		if _, seen := n.notified[reminder.ID]; seen {
			continue
		}
		n.notified[reminder.ID] = struct{}{}
		n.logger.InfoContext(ctx, "Reminder due",
			log.FieldReminderID, reminder.ID,
			log.FieldDate, reminder.Date.String(),
			"text", reminder.Text)
	}
}
