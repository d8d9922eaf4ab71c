package service

import (
	"context"
	"log/slog"
	"time"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
	"fitcoach-backend/internal/repository"
)

type promotionService struct {
	clientRepo repository.ClientRepository
	batchSize  int
	log        *slog.Logger
}

func NewPromotionService(clientRepo repository.ClientRepository) PromotionService {
	return &promotionService{
		clientRepo: clientRepo,
		batchSize:  repository.MaxPromotionBatch,
		log:        logger.WithService("promotion"),
	}
}

// RunDailyPromotion advances every client whose queued plan is due. The
// trigger is the queued plan's own start date; whether the current plan has
// ended does not matter. A failed batch only marks its own clients failed;
// they still match the query and are picked up by the next run.
func (s *promotionService) RunDailyPromotion(ctx context.Context, now time.Time) (*domain.PromotionReport, error) {
	due, err := s.clientRepo.ListDuePromotions(ctx, now)
	if err != nil {
		// Wholesale failure: surface it so the scheduling platform retries
		// the whole job.
		return nil, err
	}

	report := &domain.PromotionReport{
		RanAt:   now,
		Matched: len(due),
	}

	for start := 0; start < len(due); start += s.batchSize {
		end := start + s.batchSize
		if end > len(due) {
			end = len(due)
		}
		batch := due[start:end]

		if err := s.clientRepo.PromoteClients(ctx, batch, now); err != nil {
			s.log.Error("Promotion batch failed", "from", start, "size", len(batch), "error", err)
			for _, c := range batch {
				report.Failures = append(report.Failures, domain.PromotionFailure{
					ClientID: c.ID,
					Reason:   err.Error(),
				})
			}
			continue
		}

		report.Promoted += len(batch)
		for _, c := range batch {
			report.Records = append(report.Records, domain.PromotionRecord{
				ClientID:   c.ID,
				FromPlanID: c.CurrentPlanID,
				ToPlanID:   c.NextPlanID,
			})
			s.log.Debug("Promoted plan",
				"client_id", c.ID,
				"from_plan", c.CurrentPlanID,
				"to_plan", c.NextPlanID)
		}
	}

	s.log.Info("Daily plan promotion finished",
		"matched", report.Matched,
		"promoted", report.Promoted,
		"failed", len(report.Failures))
	return report, nil
}
