package store

import (
	"time"

	"github.com/google/uuid"

	"rclinic-backend/models"
	"rclinic-backend/utils"
)

// SeedData is the demo content the portal starts with.
type SeedData struct {
	Offers            []models.Offer
	Coupons           []models.Coupon
	CouponInstances   []models.CouponInstance
	Specialists       []models.Specialist
	MedicalCenters    []models.MedicalCenter
	Associates        []models.Associate
	ScheduleUsers     []models.ScheduleUser
	Referrers         []models.Referrer
	Appointments      []models.Appointment
	ReminderTemplates []models.ReminderTemplate
}

// DefaultSeed builds the demo content. now must already be in the agenda
// time zone: appointment dates and availability keys are derived from its
// local calendar date. passwordHash is assigned to every staff account.
func DefaultSeed(now time.Time, passwordHash string) SeedData {
	day := func(n int) string { return utils.LocalDate(utils.AddDays(now, n)) }
	price := func(v float64) *float64 { return &v }
	redeemedBy := "Portal de Aliados"
	one := int64(1)

	return SeedData{
		Offers: []models.Offer{
			{ID: 1, Icon: "HeartIcon", Highlight: "Cardiología", Category: "Chequeo Preventivo", Title: "Evaluación Cardiovascular Completa", Provider: "Clínica Kennedy", Price: price(120), Status: models.Visible, Placement: models.Featured},
			{ID: 2, Icon: "EyeIcon", Highlight: "25% Descuento", Category: "Oftalmología", Title: "Consulta y Medida de la Vista", Provider: "OmniHospital", Price: price(45), Status: models.Visible, Placement: models.Featured},
			{ID: 3, Icon: "BeakerIcon", Highlight: "Resultados en 24h", Category: "Laboratorio", Title: "Perfil Lipídico Completo", Provider: "Interlab", Price: price(35), Status: models.Visible, Placement: models.Featured},
			{ID: 4, Icon: "StethoscopeIcon", Highlight: "Precio Especial", Category: "Medicina General", Title: "Consulta Médica General + Bioimpedancia", Provider: "Hospital Vernaza", Price: price(30), Status: models.Visible, Placement: models.Featured},
			{ID: 5, Icon: "HeartIcon", Highlight: "Nuevo", Category: "Dermatología", Title: "Mapeo de Lunares (Dermatoscopía)", Provider: "Clínica Kennedy", Price: price(80), Status: models.Visible, Placement: models.Secondary},
		},
		Coupons: []models.Coupon{
			{ID: 1, BrandName: "Pharmacys", BrandLogoURL: "TEXT_ONLY", Discount: "15%", Title: "En Medicinas Seleccionadas", Details: "Aplica a medicinas sin receta.", Terms: "No acumulable con otras promociones.", ExpiryDate: models.DateOf(now.AddDate(0, 0, 30)), Status: models.Visible, Placement: models.Featured},
			{ID: 3, BrandName: "Cruz Azul", BrandLogoURL: "TEXT_ONLY", Discount: "20%", Title: "En Dermocosméticos", Details: "Productos seleccionados de cuidado de la piel.", Terms: "No acumulable con otras promociones.", ExpiryDate: models.DateOf(now.AddDate(0, 0, 45)), Status: models.Visible, Placement: models.Featured},
			{ID: 4, BrandName: "Netlife", BrandLogoURL: "TEXT_ONLY", Discount: "1 Mes", Title: "Gratis por Instalación", Details: "Contrata cualquier plan y obtén el primer mes gratis.", Terms: "Válido para nuevos clientes. Aplican restricciones.", ExpiryDate: models.DateOf(now.AddDate(0, 0, 90)), Status: models.Visible, Placement: models.Featured},
			{ID: 2, BrandName: "SanaSana", BrandLogoURL: "TEXT_ONLY", Discount: "10%", Title: "En toda la línea de Cuidado Personal", Details: "Shampoos, jabones, cremas y más.", Terms: "Válido en compras superiores a $20.", ExpiryDate: models.DateOf(now.AddDate(0, 0, 60)), Status: models.Visible, Placement: models.Featured},
		},
		CouponInstances: []models.CouponInstance{
			{ID: "RCLINIC-ABC123", CouponID: 1, Status: models.InstanceRedeemed, GeneratedAt: now, RedeemedAt: &now, RedeemedBy: &redeemedBy},
		},
		Specialists: []models.Specialist{
			{
				ID: 1, Name: "Dr. Juan Pérez", Specialty: "Cardiología", Address: "Av. del Bombero, Clínica Kennedy", Phone: "0991234567",
				ConsultationFee: 60, Biography: "Cardiólogo con más de 15 años de experiencia en el diagnóstico y tratamiento de enfermedades cardiovasculares.",
				MedicalCenterID: "kennedy",
				Availability:    models.SlotMap{day(1): {"09:00", "10:00", "11:00"}, day(2): {"14:00", "15:00"}},
				WeeklySchedule:  models.SlotMap{"Lunes": {"09:00", "10:00", "11:00"}, "Miércoles": {"14:00", "15:00"}, "Viernes": {"09:00"}},
				Status:          models.Visible,
			},
			{
				ID: 2, Name: "Dra. Ana García", Specialty: "Dermatología", Address: "Av. del Bombero, Clínica Kennedy", Phone: "0987654321",
				ConsultationFee: 50, Biography: "Especialista en dermatología clínica y estética, con enfoque en tratamientos de acné y rejuvenecimiento facial.",
				MedicalCenterID: "kennedy",
				Availability:    models.SlotMap{day(1): {"08:30", "09:30"}, day(2): {"10:30", "11:30", "12:30"}},
				WeeklySchedule:  models.SlotMap{"Martes": {"08:30", "09:30"}, "Jueves": {"10:30", "11:30", "12:30"}},
				Status:          models.Visible,
			},
		},
		MedicalCenters: []models.MedicalCenter{
			{ID: "kennedy", Name: "Clínica Kennedy", Address: "Av. del Bombero km 5.5", City: "Guayaquil", Sector: "Ceibos", LogoURL: "https://www.clinicakennedy.med.ec/images/logo-kennedy-g-ceibos-web.png", Status: models.Visible},
			{ID: "omni", Name: "OmniHospital", Address: "Av. Abel Romeo Castillo", City: "Guayaquil", Sector: "Kennedy", LogoURL: "https://www.omnihospital.ec/wp-content/uploads/2021/03/logo-omni-azul.png", Status: models.Visible},
			{ID: "vernaza", Name: "Hospital Luis Vernaza", Address: "Loja 700 y Escobedo", City: "Guayaquil", Sector: "Centro", LogoURL: "https://www.jbg.org.ec/files/images/logo-hospital-luis-vernaza.png", Status: models.Visible},
		},
		Associates: []models.Associate{
			{ID: 1, Name: "Novamedic", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 2, Name: "Totalmedic", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 3, Name: "Medicaldent", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 4, Name: "Medimaster", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 5, Name: "Clínica San Vicente", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 6, Name: "Medisol", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 7, Name: "Labmedent", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 8, Name: "Medfam", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 9, Name: "Hospital Granados", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
			{ID: 10, Name: "Aprofe", LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible},
		},
		ScheduleUsers: []models.ScheduleUser{
			{ID: 1, FirstName: "Admin", LastName: "RClinic", Username: "admin", Email: "admin@rclinic.ec", PasswordHash: passwordHash, MedicalCenterID: "kennedy", Status: models.Visible, Role: models.RoleAdmin},
			{ID: 2, FirstName: "Juan", LastName: "Pérez", Username: "jperez", Email: "jperez@rclinic.ec", PasswordHash: passwordHash, MedicalCenterID: "kennedy", Status: models.Visible, Role: models.RoleDoctor, SpecialistID: &one},
		},
		Referrers: []models.Referrer{
			{ID: 1, Name: "Carlos Vera", Email: "cvera@example.com", Phone: "0991234567", Status: models.ReferrerApproved, ReferralCode: "CARLOSA1B2", CreatedAt: now, ActivityStatus: models.Active},
			{ID: 2, Name: "Ana Gomez", Email: "agomez@example.com", Phone: "0987654321", Status: models.ReferrerPending, ReferralCode: "ANAGB4C5", CreatedAt: now, ActivityStatus: models.Active},
		},
		Appointments: []models.Appointment{
			{ID: 1, SpecialistID: 1, PatientName: "Elena Rodriguez", PatientPhone: "0987654321", Date: day(0), Time: "09:00", Status: models.StatusScheduled},
			{ID: 2, SpecialistID: 2, PatientName: "Carlos Sanchez", PatientPhone: "0991234567", Date: day(0), Time: "09:30", Status: models.StatusScheduled},
			{ID: 3, SpecialistID: 1, PatientName: "Sofia Martinez", PatientPhone: "0988887777", Date: day(0), Time: "10:00", Status: models.StatusScheduled},
			{ID: 4, SpecialistID: 1, PatientName: "Luis Gonzalez", PatientPhone: "0977776666", Date: day(1), Time: "11:00", Status: models.StatusScheduled},
			{ID: 5, SpecialistID: 2, PatientName: "Isabel Castillo", PatientPhone: "0966665555", Date: day(1), Time: "12:30", Status: models.StatusScheduled},
			{ID: 6, SpecialistID: 2, PatientName: "Jorge Torres", PatientPhone: "0955554444", Date: day(2), Time: "08:30", Status: models.StatusScheduled},
			{ID: 7, SpecialistID: 1, PatientName: "Fernanda Diaz", PatientPhone: "0944443333", Date: day(5), Time: "15:00", Status: models.StatusScheduled},
		},
		ReminderTemplates: []models.ReminderTemplate{
			{ID: uuid.New(), MedicalCenterID: "kennedy", Message: "Hola [PatientName], le recordamos su cita con [Doctor] el [Date] a las [Time] en Clínica Kennedy. Responda SI para confirmar.", IsActive: true, CreatedAt: now, UpdatedAt: now},
		},
	}
}

// NewMemoryStores builds in-memory repositories holding seed.
func NewMemoryStores(seed SeedData) *Stores {
	return &Stores{
		Offers:            NewMemoryRepository[models.Offer, int64](seed.Offers...),
		Coupons:           NewMemoryRepository[models.Coupon, int64](seed.Coupons...),
		CouponInstances:   NewMemoryRepository[models.CouponInstance, string](seed.CouponInstances...),
		Specialists:       NewMemoryRepository[models.Specialist, int64](seed.Specialists...),
		MedicalCenters:    NewMemoryRepository[models.MedicalCenter, string](seed.MedicalCenters...),
		Associates:        NewMemoryRepository[models.Associate, int64](seed.Associates...),
		ScheduleUsers:     NewMemoryRepository[models.ScheduleUser, int64](seed.ScheduleUsers...),
		Referrers:         NewMemoryRepository[models.Referrer, int64](seed.Referrers...),
		Appointments:      NewMemoryRepository[models.Appointment, int64](seed.Appointments...),
		ReminderTemplates: NewMemoryRepository[models.ReminderTemplate, uuid.UUID](seed.ReminderTemplates...),
		ReminderLogs:      NewMemoryRepository[models.ReminderLog, uuid.UUID](),
	}
}
