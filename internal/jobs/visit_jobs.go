package jobs

import (
	"context"
	"time"

	"visithub-backend/internal/logger"
	"visithub-backend/internal/window"
)

const backfillBatchSize = 500

// BackfillVisitWindows computes window fields for scheduled visits that
// never had them derived. The derivation is deterministic per calendar
// day, so the job can run alongside lazy gate-time backfill without
// coordination.
func (jr *JobRunner) BackfillVisitWindows() {
	jr.runWithRecovery("BackfillVisitWindows", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		visits, err := jr.store.VisitRepository.ListMissingWindow(ctx, backfillBatchSize)
		if err != nil {
			logger.Error("Failed to list visits missing windows", "error", err)
			return
		}

		var filled int
		for _, v := range visits {
			start, end := window.Compute(v.ScheduledDate)
			if err := jr.store.VisitRepository.SetWindow(ctx, v.ID, start, end); err != nil {
				logger.Error("Failed to backfill visit window", "visit_id", v.ID, "error", err)
				continue
			}
			filled++
		}
		logger.Info("Visit window backfill finished", "candidates", len(visits), "filled", filled)
	})
}

// SendWindowOpeningReminders emails every member of a team whose visit
// window opens during the current local calendar day.
func (jr *JobRunner) SendWindowOpeningReminders() {
	jr.runWithRecovery("SendWindowOpeningReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		now := jr.clock.Now().In(window.IST)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, window.IST)
		dayEnd := dayStart.Add(24 * time.Hour)

		visits, err := jr.store.VisitRepository.ListOpeningBetween(ctx, dayStart, dayEnd)
		if err != nil {
			logger.Error("Failed to list visits opening today", "error", err)
			return
		}

		var sent int
		for _, v := range visits {
			team, err := jr.store.TeamRepository.GetByID(ctx, v.TeamID)
			if err != nil {
				logger.Error("Failed to load team for reminder", "team_id", v.TeamID, "error", err)
				continue
			}
			members, err := jr.store.TeamRepository.GetMembers(ctx, v.TeamID)
			if err != nil {
				logger.Error("Failed to load team members for reminder", "team_id", v.TeamID, "error", err)
				continue
			}
			for _, m := range members {
				user, err := jr.store.UserRepository.GetByID(ctx, m.UserID)
				if err != nil {
					continue
				}
				if err := jr.email.SendWindowOpeningReminder(ctx, user.Email, user.Name, team.Name, *v.WindowStart, *v.WindowEnd); err != nil {
					logger.Error("Failed to send window reminder", "user_id", user.ID, "visit_id", v.ID, "error", err)
					continue
				}
				sent++
			}
		}
		logger.Info("Window opening reminders finished", "visits", len(visits), "emails_sent", sent)
	})
}
