// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"rclinic-backend/metrics"
	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelLog      = "log"

	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

// DefaultReminderMessage is used when a center has no active template.
const DefaultReminderMessage = "Hola [PatientName], le recordamos su cita con [Doctor] el [Date] a las [Time]. Responda SI para confirmar."

// Notifier delivers one text message and reports the channel it used.
type Notifier interface {
	Send(ctx context.Context, to, body string) (channel string, err error)
}

// TwilioNotifier sends WhatsApp to E.164 numbers and SMS otherwise.
type TwilioNotifier struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsAppNumber string
}

func NewTwilioNotifier(accountSID, authToken, phoneNumber, whatsAppNumber string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		phoneNumber:    phoneNumber,
		whatsAppNumber: whatsAppNumber,
	}
}

func (n *TwilioNotifier) Send(ctx context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	channel := ChannelSMS
	if strings.HasPrefix(to, "+") && n.whatsAppNumber != "" {
		channel = ChannelWhatsApp
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.whatsAppNumber)
	} else {
		params.SetTo(to)
		params.SetFrom(n.phoneNumber)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return channel, err
	}
	if resp.Sid != nil {
		log.Debug().Str("to", to).Str("sid", *resp.Sid).Msg("twilio message sent")
	}
	return channel, nil
}

// LogNotifier only logs. It stands in for Twilio when no credentials are
// configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, to, body string) (string, error) {
	log.Info().Str("to", to).Str("body", body).Msg("reminder (log only)")
	return ChannelLog, nil
}

// RenderReminder fills the template placeholders.
func RenderReminder(template string, a models.Appointment, doctor string) string {
	return strings.NewReplacer(
		models.PlaceholderPatient, a.PatientName,
		models.PlaceholderDoctor, doctor,
		models.PlaceholderDate, a.Date,
		models.PlaceholderTime, a.Time,
	).Replace(template)
}

type ReminderService struct {
	stores   *store.Stores
	notifier Notifier
	now      func() time.Time
}

func NewReminderService(stores *store.Stores, notifier Notifier, now func() time.Time) *ReminderService {
	return &ReminderService{stores: stores, notifier: notifier, now: now}
}

func (s *ReminderService) activeTemplate(ctx context.Context, centerID string) (*models.ReminderTemplate, error) {
	templates, err := store.Filter(ctx, s.stores.ReminderTemplates, func(t models.ReminderTemplate) bool {
		return t.MedicalCenterID == centerID && t.IsActive
	})
	if err != nil || len(templates) == 0 {
		return nil, err
	}
	return &templates[0], nil
}

// Deliver sends the reminder for one appointment and records the attempt.
// Delivery failures are logged, not returned: the appointment has already
// moved on and the log row carries the error.
func (s *ReminderService) Deliver(ctx context.Context, a models.Appointment, specialist models.Specialist) models.ReminderLog {
	message := DefaultReminderMessage
	var templateID uuid.UUID
	tmpl, err := s.activeTemplate(ctx, specialist.MedicalCenterID)
	if err != nil {
		log.Error().Err(err).Str("medicalCenterId", specialist.MedicalCenterID).Msg("failed to load reminder template")
	}
	if tmpl != nil {
		message = tmpl.Message
		templateID = tmpl.ID
	}
	message = RenderReminder(message, a, specialist.Name)

	entry := models.ReminderLog{
		ID:              uuid.New(),
		MedicalCenterID: specialist.MedicalCenterID,
		AppointmentID:   a.ID,
		TemplateID:      templateID,
		Message:         message,
		Status:          ReminderSent,
		SentAt:          s.now(),
	}

	to := utils.NormalizePhone(a.PatientPhone)
	if to == "" {
		entry.Status = ReminderFailed
		entry.ErrorMessage = "patient has no phone number"
	} else {
		channel, err := s.notifier.Send(ctx, to, message)
		entry.Channel = channel
		if err != nil {
			log.Error().Err(err).Int64("appointmentId", a.ID).Msg("failed to send reminder")
			entry.Status = ReminderFailed
			entry.ErrorMessage = err.Error()
		}
	}
	metrics.RecordReminder(entry.Channel, entry.Status)

	if _, err := s.stores.ReminderLogs.Create(ctx, entry); err != nil {
		log.Error().Err(err).Int64("appointmentId", a.ID).Msg("failed to log reminder")
	}
	return entry
}

// Logs returns the reminder log of a center, newest first. An empty
// centerID returns every center.
func (s *ReminderService) Logs(ctx context.Context, centerID string) ([]models.ReminderLog, error) {
	logs, err := store.Filter(ctx, s.stores.ReminderLogs, func(l models.ReminderLog) bool {
		return centerID == "" || l.MedicalCenterID == centerID
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].SentAt.After(logs[j].SentAt) })
	return logs, nil
}

// StartReminderScheduler runs the reminder batch for tomorrow's scheduled
// appointments on spec, a standard five-field cron expression.
func StartReminderScheduler(spec string, agenda *AgendaService) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(agenda.loc))
	_, err := c.AddFunc(spec, func() {
		tomorrow := utils.LocalDate(utils.AddDays(agenda.Today(), 1))
		log.Info().Str("date", tomorrow).Msg("starting daily reminder processing")
		if _, err := agenda.RemindAll(context.Background(), tomorrow); err != nil {
			log.Error().Err(err).Str("date", tomorrow).Msg("daily reminder processing failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	log.Info().Str("spec", spec).Msg("reminder scheduler started")
	return c, nil
}
