package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rclinic-backend/models"
	"rclinic-backend/store"
)

func TestRenderReminder(t *testing.T) {
	msg := RenderReminder("Hola [PatientName], cita con [Doctor] el [Date] a las [Time].", models.Appointment{
		PatientName: "Elena", Date: "2025-03-02", Time: "09:00",
	}, "Dr. Juan Pérez")
	assert.Equal(t, "Hola Elena, cita con Dr. Juan Pérez el 2025-03-02 a las 09:00.", msg)
}

func TestReminderService_Deliver(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, ect)
	stores := emptyStores()
	tmplID := uuid.New()
	stores.ReminderTemplates = store.NewMemoryRepository[models.ReminderTemplate, uuid.UUID](
		models.ReminderTemplate{ID: tmplID, MedicalCenterID: "kennedy", Message: "Cita [Time] con [Doctor]", IsActive: true},
		models.ReminderTemplate{ID: uuid.New(), MedicalCenterID: "kennedy", Message: "vieja", IsActive: false},
	)
	notifier := new(mockNotifier)
	notifier.On("Send", mock.Anything, "0987654321", "Cita 09:00 con Dr. Juan Pérez").Return(ChannelSMS, nil).Once()
	notifier.On("Send", mock.Anything, "+593977776666", mock.Anything).Return(ChannelWhatsApp, errors.New("twilio down")).Once()

	svc := NewReminderService(stores, notifier, fixedClock(now))
	ctx := context.Background()
	kennedy := models.Specialist{ID: 1, Name: "Dr. Juan Pérez", MedicalCenterID: "kennedy"}

	sent := svc.Deliver(ctx, models.Appointment{ID: 1, PatientPhone: "098 765 4321", Time: "09:00"}, kennedy)
	assert.Equal(t, ReminderSent, sent.Status)
	assert.Equal(t, ChannelSMS, sent.Channel)
	assert.Equal(t, tmplID, sent.TemplateID)

	failed := svc.Deliver(ctx, models.Appointment{ID: 2, PatientPhone: "+593977776666"}, kennedy)
	assert.Equal(t, ReminderFailed, failed.Status)
	assert.Equal(t, "twilio down", failed.ErrorMessage)

	noPhone := svc.Deliver(ctx, models.Appointment{ID: 3, PatientName: "Sin"}, models.Specialist{Name: "Dr. X", MedicalCenterID: "omni"})
	assert.Equal(t, ReminderFailed, noPhone.Status)
	assert.Equal(t, uuid.Nil, noPhone.TemplateID)

	notifier.AssertExpectations(t)

	logs, err := svc.Logs(ctx, "kennedy")
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	all, err := svc.Logs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStartReminderScheduler_InvalidSpec(t *testing.T) {
	agenda := NewAgendaService(emptyStores(), nil, ect, time.Now)
	_, err := StartReminderScheduler("not a cron", agenda)
	assert.Error(t, err)

	c, err := StartReminderScheduler("0 18 * * *", agenda)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
