package notification

import (
	"context"
	"fmt"
	"time"

	"fitgate/internal/email"
	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/member"
	"fitgate/internal/user"
)

// Offsets in days from today at which a subscription end date triggers
// an owner notice: heads-up, day-of, and two post-expiry nudges.
var expiryOffsets = []int{-3, 0, 1, 3}

// ExpiryScanner probes member subscription end dates around today and
// emits one owner notification per (member, end date), de-duplicated
// against already-stored notices. It runs opportunistically on dashboard
// load and on a daily cron sweep.
type ExpiryScanner struct {
	memberRepo member.Repository
	notifRepo  Repository
	notifier   *Notifier
	gymRepo    gym.Repository
	userRepo   user.Repository
	emails     *email.Service
}

func NewExpiryScanner(
	memberRepo member.Repository,
	notifRepo Repository,
	notifier *Notifier,
	gymRepo gym.Repository,
	userRepo user.Repository,
	emails *email.Service,
) *ExpiryScanner {
	return &ExpiryScanner{
		memberRepo: memberRepo,
		notifRepo:  notifRepo,
		notifier:   notifier,
		gymRepo:    gymRepo,
		userRepo:   userRepo,
		emails:     emails,
	}
}

func offsetTitle(offset int) string {
	switch {
	case offset < 0:
		return fmt.Sprintf("Subscription expires in %d days", -offset)
	case offset == 0:
		return "Subscription expires today"
	default:
		return fmt.Sprintf("Subscription expired %d day(s) ago", offset)
	}
}

// ScanGym checks the four fixed offsets for one gym. Errors are logged
// and swallowed: the scanner is a side channel and must never fail a
// request that triggered it.
func (s *ExpiryScanner) ScanGym(ctx context.Context, gymID int) {
	g, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		logger.Error("expiry scan: gym lookup failed", "gym_id", gymID, "error", err)
		return
	}

	owner, err := s.userRepo.FindByID(ctx, g.OwnerID)
	if err != nil {
		logger.Error("expiry scan: owner lookup failed", "gym_id", gymID, "error", err)
		return
	}

	today := time.Now()
	for _, offset := range expiryOffsets {
		target := today.AddDate(0, 0, offset)

		members, err := s.memberRepo.ListBySubscriptionEndDate(ctx, gymID, target)
		if err != nil {
			logger.Error("expiry scan: member query failed", "gym_id", gymID, "offset", offset, "error", err)
			continue
		}

		for _, m := range members {
			if m.SubscriptionEndDate == nil {
				continue
			}
			endDate := m.SubscriptionEndDate.Format("2006-01-02")

			exists, err := s.notifRepo.ExpiryNoticeExists(ctx, gymID, m.ID, endDate)
			if err != nil {
				logger.Error("expiry scan: dedupe check failed", "member_id", m.ID, "error", err)
				continue
			}
			if exists {
				continue
			}

			title := offsetTitle(offset)
			msg := fmt.Sprintf("%s's subscription ends on %s.", m.Name, endDate)

			if err := s.notifier.Publish(ctx, gymID, g.OwnerID, TypeSubscriptionExpiry, title, msg, map[string]interface{}{
				"member_id": m.ID,
				"end_date":  endDate,
				"offset":    offset,
			}); err != nil {
				continue
			}

			if s.emails != nil && owner.Email != "" {
				_ = s.emails.SendExpiryAlert(ctx, owner.Email, owner.Name, m.Name, g.Name, *m.SubscriptionEndDate)
			}
		}
	}
}

// ScanAllGyms is the daily sweep over every active gym, so expiry
// windows are caught even when an owner never opens the dashboard.
func (s *ExpiryScanner) ScanAllGyms(ctx context.Context) {
	gyms, err := s.gymRepo.ListActive(ctx)
	if err != nil {
		logger.Error("expiry sweep: listing gyms failed", "error", err)
		return
	}

	for _, g := range gyms {
		s.ScanGym(ctx, g.ID)
	}
}
