package checkin

import (
	"context"
	"errors"

	"fitgate/internal/email"
	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/member"
	"fitgate/internal/metrics"
	"fitgate/internal/notification"
	"fitgate/internal/qrcode"
	"fitgate/internal/user"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrWrongGym       = errors.New("member does not belong to this gym")
)

type Service interface {
	RecordCheckIn(ctx context.Context, memberID, gymID int, scanID, qrCodeStr string) (*RecordResult, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	qrRepo     qrcode.Repository
	gymRepo    gym.Repository
	userRepo   user.Repository
	notifier   *notification.Notifier
	emails     *email.Service
}

func NewService(
	repo Repository,
	memberRepo member.Repository,
	qrRepo qrcode.Repository,
	gymRepo gym.Repository,
	userRepo user.Repository,
	notifier *notification.Notifier,
	emails *email.Service,
) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		qrRepo:     qrRepo,
		gymRepo:    gymRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		emails:     emails,
	}
}

// RecordCheckIn persists exactly one check-in row and evaluates the
// notification triggers. Steps after the insert are best effort: a lost
// counter bump or notification never rolls back or fails the check-in.
func (s *service) RecordCheckIn(ctx context.Context, memberID, gymID int, scanID, qrCodeStr string) (*RecordResult, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	if m.GymID != gymID {
		return nil, ErrWrongGym
	}

	// A qr code string that doesn't resolve is tolerated; the check-in
	// is stored without the link.
	var qrCodeID *int
	if qrCodeStr != "" {
		if id, err := s.qrRepo.ResolveCodeID(ctx, qrCodeStr); err == nil {
			qrCodeID = id
		}
	}

	var scanRef *string
	if scanID != "" {
		scanRef = &scanID
	}

	ci, err := s.repo.Create(ctx, gymID, &memberID, qrCodeID, scanRef, []string{"qr-scan"})
	if err != nil {
		return nil, err
	}

	if qrCodeID != nil {
		if err := s.qrRepo.IncrementScans(ctx, *qrCodeID); err != nil {
			logger.Error("check-in: scan counter bump failed", "qr_code_id", *qrCodeID, "error", err)
		}
	}

	if m.MembershipStatus == member.StatusTrial {
		s.notifyTrialCheckIn(ctx, m)
	}

	warning := m.MembershipStatus != member.StatusActive
	if warning {
		s.alertInactiveCheckIn(ctx, m)
	}

	metrics.RecordCheckIn(string(m.MembershipStatus))

	result := &RecordResult{
		CheckInID:           ci.ID,
		CheckInTime:         ci.CheckInTime,
		MemberName:          m.Name,
		MembershipStatus:    string(m.MembershipStatus),
		SubscriptionWarning: warning,
	}
	if m.SubscriptionEndDate != nil {
		d := m.SubscriptionEndDate.Format("2006-01-02")
		result.SubscriptionEndDate = &d
	}

	return result, nil
}

func (s *service) notifyTrialCheckIn(ctx context.Context, m *member.Member) {
	g, err := s.gymRepo.GetByID(ctx, m.GymID)
	if err != nil {
		logger.Error("check-in: gym lookup for trial notice failed", "gym_id", m.GymID, "error", err)
		return
	}

	_ = s.notifier.Publish(ctx, g.ID, g.OwnerID, notification.TypeTrialCheckIn,
		"Trial Member Check-in",
		m.Name+" (trial) just checked in.",
		map[string]interface{}{"member_id": m.ID})
}

func (s *service) alertInactiveCheckIn(ctx context.Context, m *member.Member) {
	g, err := s.gymRepo.GetByID(ctx, m.GymID)
	if err != nil {
		logger.Error("check-in: gym lookup for inactive alert failed", "gym_id", m.GymID, "error", err)
		return
	}

	owner, err := s.userRepo.FindByID(ctx, g.OwnerID)
	if err != nil || owner.Email == "" {
		logger.Error("check-in: owner lookup for inactive alert failed", "gym_id", g.ID, "error", err)
		return
	}

	_ = s.emails.SendInactiveCheckInAlert(ctx, owner.Email, owner.Name, m.Name, g.Name, string(m.MembershipStatus))
}
