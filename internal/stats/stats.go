package stats

import (
	"context"
	"time"

	"fitgate/internal/checkin"
	"fitgate/internal/member"
	"fitgate/internal/notification"
	"fitgate/internal/payment"
	"fitgate/internal/scan"
)

// Dashboard is the owner landing view: pure read-side aggregation over
// rows the pipeline already wrote.
type Dashboard struct {
	MembersByStatus map[string]int          `json:"members_by_status"`
	CheckInsToday   int                     `json:"check_ins_today"`
	CheckInsWeek    int                     `json:"check_ins_week"`
	ScansByDevice   map[string]int          `json:"scans_by_device"`
	RevenueMonth    *payment.RevenueSummary `json:"revenue_month"`
	UnreadNotices   int                     `json:"unread_notifications"`
}

type Service struct {
	memberRepo  member.Repository
	checkinRepo checkin.Repository
	scanRepo    scan.Repository
	paymentRepo payment.Repository
	notifRepo   notification.Repository
	expiry      *notification.ExpiryScanner
}

func NewService(
	memberRepo member.Repository,
	checkinRepo checkin.Repository,
	scanRepo scan.Repository,
	paymentRepo payment.Repository,
	notifRepo notification.Repository,
	expiry *notification.ExpiryScanner,
) *Service {
	return &Service{
		memberRepo:  memberRepo,
		checkinRepo: checkinRepo,
		scanRepo:    scanRepo,
		paymentRepo: paymentRepo,
		notifRepo:   notifRepo,
		expiry:      expiry,
	}
}

func (s *Service) LoadDashboard(ctx context.Context, gymID int) (*Dashboard, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	byStatus, err := s.memberRepo.CountByStatus(ctx, gymID)
	if err != nil {
		return nil, err
	}

	today, err := s.checkinRepo.CountSince(ctx, gymID, startOfDay)
	if err != nil {
		return nil, err
	}

	week, err := s.checkinRepo.CountSince(ctx, gymID, startOfWeek)
	if err != nil {
		return nil, err
	}

	byDevice, err := s.scanRepo.CountByDevice(ctx, gymID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.RevenueSince(ctx, gymID, startOfMonth)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.UnreadCount(ctx, gymID)
	if err != nil {
		return nil, err
	}

	// Opportunistic expiry probe; the dashboard response never waits on
	// it. The daily cron sweep covers gyms whose owners don't visit.
	if s.expiry != nil {
		go s.expiry.ScanGym(context.Background(), gymID)
	}

	return &Dashboard{
		MembersByStatus: byStatus,
		CheckInsToday:   today,
		CheckInsWeek:    week,
		ScansByDevice:   byDevice,
		RevenueMonth:    revenue,
		UnreadNotices:   unread,
	}, nil
}
