package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	stores    *store.Stores
	referrals *ReferralService
	secret    string
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(stores *store.Stores, referrals *ReferralService, secret string, ttl time.Duration, now func() time.Time) *AuthService {
	return &AuthService{stores: stores, referrals: referrals, secret: secret, ttl: ttl, now: now}
}

type StaffSession struct {
	Token string              `json:"token"`
	User  models.ScheduleUser `json:"user"`
}

type ReferrerSession struct {
	Token     string            `json:"token"`
	Dashboard ReferralDashboard `json:"dashboard"`
}

// StaffLogin matches the username case-insensitively and verifies the
// bcrypt hash. Hidden accounts cannot sign in.
func (s *AuthService) StaffLogin(ctx context.Context, username, password string) (StaffSession, error) {
	username = strings.TrimSpace(username)
	matches, err := store.Filter(ctx, s.stores.ScheduleUsers, func(u models.ScheduleUser) bool {
		return strings.EqualFold(u.Username, username)
	})
	if err != nil {
		return StaffSession{}, err
	}
	if len(matches) == 0 {
		return StaffSession{}, ErrInvalidCredentials
	}
	user := matches[0]
	if user.Status != models.Visible || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return StaffSession{}, ErrInvalidCredentials
	}

	now := s.now()
	token, err := utils.GenerateToken(s.secret, s.ttl, strconv.FormatInt(user.ID, 10), utils.Claims{
		Role:            user.Role,
		Username:        user.Username,
		MedicalCenterID: user.MedicalCenterID,
		SpecialistID:    user.SpecialistID,
	}, now)
	if err != nil {
		return StaffSession{}, err
	}

	updated, err := s.stores.ScheduleUsers.Mutate(ctx, user.ID, func(u models.ScheduleUser) (models.ScheduleUser, error) {
		u.LastLogin = &now
		return u, nil
	})
	if err != nil {
		log.Warn().Err(err).Int64("userId", user.ID).Msg("failed to record last login")
		updated = user
	}
	return StaffSession{Token: token, User: updated}, nil
}

// ReferrerLogin signs a referrer in with their referral code.
func (s *AuthService) ReferrerLogin(ctx context.Context, code string) (ReferrerSession, error) {
	dashboard, err := s.referrals.Dashboard(ctx, code)
	if err != nil {
		return ReferrerSession{}, err
	}
	token, err := utils.GenerateToken(s.secret, s.ttl, strconv.FormatInt(dashboard.Referrer.ID, 10), utils.Claims{
		Role:         models.RoleReferrer,
		ReferralCode: dashboard.Referrer.ReferralCode,
	}, s.now())
	if err != nil {
		return ReferrerSession{}, err
	}
	return ReferrerSession{Token: token, Dashboard: dashboard}, nil
}
