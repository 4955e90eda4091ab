package models

type AppointmentStatus string

const (
	StatusScheduled    AppointmentStatus = "agendada"
	StatusReminderSent AppointmentStatus = "recordatorio-enviado"
	StatusConfirmed    AppointmentStatus = "confirmada"
	StatusCancelled    AppointmentStatus = "cancelada"
	StatusReschedule   AppointmentStatus = "reprogramar"
)

// AppointmentStatuses lists every status in dashboard display order.
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusReminderSent,
	StatusConfirmed,
	StatusCancelled,
	StatusReschedule,
}

// Appointment is the central record of the medical agenda. Date is a local
// calendar date (YYYY-MM-DD) and Time a zero-padded 24h HH:MM string, so
// both sort correctly as strings.
type Appointment struct {
	ID           int64             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SpecialistID int64             `gorm:"index;not null" json:"specialistId"`
	PatientName  string            `gorm:"not null" json:"patientName"`
	PatientPhone string            `json:"patientPhone"`
	Date         string            `gorm:"type:char(10);index;not null" json:"date"`
	Time         string            `gorm:"type:char(5);not null" json:"time"`
	Status       AppointmentStatus `gorm:"type:varchar(24);default:'agendada'" json:"status"`
}

func (a Appointment) EntityID() int64 { return a.ID }
