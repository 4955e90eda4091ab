package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rclinic-backend/models"
)

func TestReferralCodePrefix(t *testing.T) {
	assert.Equal(t, "CARLOS", ReferralCodePrefix("carlos Vera"))
	assert.Equal(t, "ANA", ReferralCodePrefix("  Ana   Gomez "))
	assert.Equal(t, "", ReferralCodePrefix("   "))
}

func TestReferralService_Register(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, ect)
	svc := NewReferralService(seededStores(now), fixedClock(now))
	ctx := context.Background()

	r, err := svc.Register(ctx, ReferralRegistration{Name: "maría López", Email: "mlopez@example.com", Phone: "099 123 4567"})
	require.NoError(t, err)
	assert.Regexp(t, `^MARÍA[0-9A-Z]{4}$`, r.ReferralCode)
	assert.Equal(t, models.ReferrerPending, r.Status)
	assert.Equal(t, models.Active, r.ActivityStatus)
	assert.Equal(t, "0991234567", r.Phone)
	assert.Equal(t, now, r.CreatedAt)

	// Pending referrers cannot sign in yet.
	_, err = svc.SignIn(ctx, r.ReferralCode)
	assert.ErrorIs(t, err, ErrReferralSignIn)

	_, err = svc.Register(ctx, ReferralRegistration{Name: "Pedro", Email: "p@example.com", Phone: "12"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = svc.Register(ctx, ReferralRegistration{Name: " ", Email: "p@example.com", Phone: "0991234567"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestReferralService_ApprovalAndActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, ect)
	svc := NewReferralService(seededStores(now), fixedClock(now))
	ctx := context.Background()

	approved, err := svc.Approve(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ReferrerApproved, approved.Status)

	_, err = svc.Reject(ctx, 2)
	assert.ErrorIs(t, err, ErrReferrerNotPending)
	_, err = svc.Approve(ctx, 404)
	assert.ErrorIs(t, err, ErrReferrerNotFound)

	dash, err := svc.Dashboard(ctx, "anagb4c5")
	require.NoError(t, err)
	assert.Equal(t, "https://rclinic.ec/#/registro-cliente?ref=ANAGB4C5", dash.ReferralLink)
	assert.Equal(t, 0.15, dash.CommissionRate)
	assert.Equal(t, 12, dash.CommissionMonths)

	toggled, err := svc.ToggleActivity(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Inactive, toggled.ActivityStatus)
	_, err = svc.SignIn(ctx, "ANAGB4C5")
	assert.ErrorIs(t, err, ErrReferralSignIn)

	_, err = svc.SignIn(ctx, "NOPE0000")
	assert.ErrorIs(t, err, ErrReferralSignIn)
}
