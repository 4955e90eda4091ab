package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{`"2026-12-31"`, "2026-12-31", false},
		{`"2026-12-31T23:30:00-05:00"`, "2026-12-31", false},
		{`""`, "", false},
		{`"31/12/2026"`, "", true},
		{`"2026-02-30"`, "", true},
		{`20261231`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestCoupon_ExpiredAtMidnightUTC(t *testing.T) {
	c := Coupon{ExpiryDate: "2025-11-01"}

	assert.False(t, c.Expired(time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, c.Expired(time.Date(2025, 11, 1, 0, 0, 1, 0, time.UTC)))
	// 2025-10-31 20:00 in Guayaquil is already past midnight UTC.
	assert.True(t, c.Expired(time.Date(2025, 10, 31, 20, 0, 0, 0, time.FixedZone("ECT", -5*3600))))
	assert.True(t, Coupon{}.Expired(time.Now()))
}
