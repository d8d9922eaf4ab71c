package jobs

import (
	"context"
	"time"

	"fitcoach-backend/internal/logger"
)

// RunDailyPlanPromotion advances every client whose queued training plan is
// due. An error from the run leaves the due clients untouched in the query
// set, so the platform retry of the whole job is safe.
func (jr *JobRunner) RunDailyPlanPromotion() {
	jr.runWithRecovery("DailyPlanPromotion", func() {
		ctx := context.Background()

		report, err := jr.services.Promotion.RunDailyPromotion(ctx, time.Now())
		if err != nil {
			logger.ErrorContext(ctx, "Daily plan promotion failed", "error", err)
			return
		}

		for _, rec := range report.Records {
			logger.InfoContext(ctx, "Promoted client plan",
				"client_id", rec.ClientID,
				"from_plan", rec.FromPlanID,
				"to_plan", rec.ToPlanID)
		}
		for _, f := range report.Failures {
			logger.ErrorContext(ctx, "Client promotion failed",
				"client_id", f.ClientID,
				"reason", f.Reason)
		}

		logger.InfoContext(ctx, "Daily plan promotion report",
			"matched", report.Matched,
			"promoted", report.Promoted,
			"failed", len(report.Failures))
	})
}
