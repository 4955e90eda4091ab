package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

var ect = time.FixedZone("ECT", -5*3600)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func emptyStores() *store.Stores {
	return store.NewMemoryStores(store.SeedData{})
}

func seededStores(now time.Time) *store.Stores {
	hash, err := utils.HashPassword("rclinic123")
	if err != nil {
		panic(err)
	}
	return store.NewMemoryStores(store.DefaultSeed(now.In(ect), hash))
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func adminViewer() Viewer {
	return Viewer{Role: models.RoleAdmin, MedicalCenterID: "kennedy"}
}
