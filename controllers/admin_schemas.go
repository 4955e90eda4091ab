package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rclinic-backend/crud"
	"rclinic-backend/models"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

var (
	visibilityOptions = []string{string(models.Visible), string(models.Hidden)}
	placementOptions  = []string{string(models.Featured), string(models.Secondary)}
	roleOptions       = []string{string(models.RoleAdmin), string(models.RoleDoctor)}
)

// numericID assigns millisecond-stamp ids, bumped past the stored maximum.
func numericID[T store.Entity[int64]](now func() time.Time) func(context.Context, T, store.Repository[T, int64]) (int64, error) {
	return func(ctx context.Context, _ T, repo store.Repository[T, int64]) (int64, error) {
		return store.NextNumericID(ctx, repo, now().UnixMilli())
	}
}

func OfferSchema(now func() time.Time) *crud.Schema[models.Offer, int64] {
	return &crud.Schema[models.Offer, int64]{
		Name: "offer",
		Fields: []crud.Field{
			{Name: "icon", Label: "Icono", Kind: crud.KindText},
			{Name: "highlight", Label: "Destacado", Kind: crud.KindText},
			{Name: "category", Label: "Categoría", Kind: crud.KindText, Required: true},
			{Name: "title", Label: "Título", Kind: crud.KindText, Required: true},
			{Name: "provider", Label: "Proveedor", Kind: crud.KindText, Required: true},
			{Name: "price", Label: "Precio", Kind: crud.KindNumber},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
			{Name: "placement", Label: "Ubicación", Kind: crud.KindSelect, Options: placementOptions},
		},
		Defaults: func() models.Offer {
			return models.Offer{Icon: "HeartIcon", Status: models.Visible, Placement: models.Featured}
		},
		NewID:  numericID[models.Offer](now),
		WithID: func(o models.Offer, id int64) models.Offer { o.ID = id; return o },
		ToggleStatus: func(o models.Offer) models.Offer {
			o.Status = o.Status.Toggle()
			return o
		},
	}
}

func CouponSchema(now func() time.Time) *crud.Schema[models.Coupon, int64] {
	return &crud.Schema[models.Coupon, int64]{
		Name: "coupon",
		Fields: []crud.Field{
			{Name: "brandName", Label: "Marca", Kind: crud.KindText, Required: true},
			{Name: "brandLogoUrl", Label: "Logo de la marca", Kind: crud.KindURL},
			{Name: "productImageUrl", Label: "Imagen del producto", Kind: crud.KindURL},
			{Name: "discount", Label: "Descuento", Kind: crud.KindText, Required: true},
			{Name: "title", Label: "Título", Kind: crud.KindText},
			{Name: "details", Label: "Detalles", Kind: crud.KindTextarea},
			{Name: "terms", Label: "Términos", Kind: crud.KindTextarea},
			{Name: "expiryDate", Label: "Fecha de expiración", Kind: crud.KindDate, Required: true},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
			{Name: "placement", Label: "Ubicación", Kind: crud.KindSelect, Options: placementOptions},
		},
		Defaults: func() models.Coupon {
			return models.Coupon{BrandLogoURL: "TEXT_ONLY", Status: models.Visible, Placement: models.Featured}
		},
		NewID:  numericID[models.Coupon](now),
		WithID: func(cp models.Coupon, id int64) models.Coupon { cp.ID = id; return cp },
		ToggleStatus: func(cp models.Coupon) models.Coupon {
			cp.Status = cp.Status.Toggle()
			return cp
		},
		Validate: func(cp models.Coupon) error {
			if !cp.ExpiryDate.Valid() {
				return &crud.RuleError{Field: "expiryDate", Message: "La fecha de expiración debe tener el formato AAAA-MM-DD."}
			}
			return nil
		},
	}
}

func AssociateSchema(now func() time.Time) *crud.Schema[models.Associate, int64] {
	return &crud.Schema[models.Associate, int64]{
		Name: "associate",
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre", Kind: crud.KindText, Required: true},
			{Name: "logoUrl", Label: "Logo", Kind: crud.KindURL},
			{Name: "website", Label: "Sitio web", Kind: crud.KindURL},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
		},
		Defaults: func() models.Associate {
			return models.Associate{LogoURL: "TEXT_ONLY", Website: "#", Status: models.Visible}
		},
		NewID:  numericID[models.Associate](now),
		WithID: func(a models.Associate, id int64) models.Associate { a.ID = id; return a },
		ToggleStatus: func(a models.Associate) models.Associate {
			a.Status = a.Status.Toggle()
			return a
		},
	}
}

// MedicalCenterSlug derives a center id from its name: lower case, words
// joined by dashes.
func MedicalCenterSlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func MedicalCenterSchema() *crud.Schema[models.MedicalCenter, string] {
	return &crud.Schema[models.MedicalCenter, string]{
		Name: "medical center",
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre", Kind: crud.KindText, Required: true},
			{Name: "address", Label: "Dirección", Kind: crud.KindText},
			{Name: "city", Label: "Ciudad", Kind: crud.KindText, Required: true},
			{Name: "sector", Label: "Sector", Kind: crud.KindText},
			{Name: "logoUrl", Label: "Logo", Kind: crud.KindURL},
			{Name: "slogan", Label: "Eslogan", Kind: crud.KindText},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
		},
		Defaults: func() models.MedicalCenter {
			return models.MedicalCenter{City: "Guayaquil", Status: models.Visible}
		},
		NewID: func(_ context.Context, mc models.MedicalCenter, _ store.Repository[models.MedicalCenter, string]) (string, error) {
			slug := MedicalCenterSlug(mc.Name)
			if slug == "" {
				return "", &crud.RuleError{Field: "name", Message: "El nombre es obligatorio."}
			}
			return slug, nil
		},
		WithID: func(mc models.MedicalCenter, id string) models.MedicalCenter { mc.ID = id; return mc },
		ToggleStatus: func(mc models.MedicalCenter) models.MedicalCenter {
			mc.Status = mc.Status.Toggle()
			return mc
		},
	}
}

func SpecialistSchema(now func() time.Time) *crud.Schema[models.Specialist, int64] {
	return &crud.Schema[models.Specialist, int64]{
		Name: "specialist",
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre", Kind: crud.KindText, Required: true},
			{Name: "specialty", Label: "Especialidad", Kind: crud.KindText, Required: true},
			{Name: "address", Label: "Dirección", Kind: crud.KindText},
			{Name: "phone", Label: "Teléfono", Kind: crud.KindText},
			{Name: "photoUrl", Label: "Foto", Kind: crud.KindURL},
			{Name: "consultationFee", Label: "Costo de consulta", Kind: crud.KindNumber},
			{Name: "biography", Label: "Biografía", Kind: crud.KindTextarea},
			{Name: "medicalCenterId", Label: "Centro médico", Kind: crud.KindText, Required: true},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
		},
		Defaults: func() models.Specialist {
			return models.Specialist{
				Status:         models.Visible,
				Availability:   models.SlotMap{},
				WeeklySchedule: models.SlotMap{},
			}
		},
		NewID:  numericID[models.Specialist](now),
		WithID: func(sp models.Specialist, id int64) models.Specialist { sp.ID = id; return sp },
		ToggleStatus: func(sp models.Specialist) models.Specialist {
			sp.Status = sp.Status.Toggle()
			return sp
		},
	}
}

// ScheduleUserSchema hashes the write-only password fields. A new user
// needs a password and a matching confirmation; an edit with an empty
// password keeps the stored hash.
func ScheduleUserSchema(now func() time.Time) *crud.Schema[models.ScheduleUser, int64] {
	return &crud.Schema[models.ScheduleUser, int64]{
		Name: "schedule user",
		Fields: []crud.Field{
			{Name: "firstName", Label: "Nombre", Kind: crud.KindText, Required: true},
			{Name: "lastName", Label: "Apellido", Kind: crud.KindText, Required: true},
			{Name: "username", Label: "Usuario", Kind: crud.KindText, Required: true},
			{Name: "email", Label: "Correo", Kind: crud.KindEmail, Required: true},
			{Name: "password", Label: "Contraseña", Kind: crud.KindPassword},
			{Name: "confirmPassword", Label: "Confirmar contraseña", Kind: crud.KindPassword},
			{Name: "medicalCenterId", Label: "Centro médico", Kind: crud.KindText, Required: true},
			{Name: "role", Label: "Rol", Kind: crud.KindSelect, Required: true, Options: roleOptions},
			{Name: "specialistId", Label: "Especialista", Kind: crud.KindNumber},
			{Name: "status", Label: "Estado", Kind: crud.KindSelect, Options: visibilityOptions},
		},
		Defaults: func() models.ScheduleUser {
			return models.ScheduleUser{Role: models.RoleDoctor, Status: models.Visible}
		},
		NewID:  numericID[models.ScheduleUser](now),
		WithID: func(u models.ScheduleUser, id int64) models.ScheduleUser { u.ID = id; return u },
		ToggleStatus: func(u models.ScheduleUser) models.ScheduleUser {
			u.Status = u.Status.Toggle()
			return u
		},
		Prepare:  prepareScheduleUser,
		Validate: validateScheduleUser,
	}
}

func prepareScheduleUser(current *models.ScheduleUser, in models.ScheduleUser) (models.ScheduleUser, error) {
	password, confirm := in.Password, in.ConfirmPassword
	in.Password, in.ConfirmPassword = "", ""
	in.Username = strings.TrimSpace(in.Username)

	if password == "" {
		if current == nil {
			return in, &crud.RuleError{Field: "password", Message: "La contraseña es obligatoria para nuevos usuarios."}
		}
		in.PasswordHash = current.PasswordHash
		in.LastLogin = current.LastLogin
		return in, nil
	}
	if password != confirm {
		return in, &crud.RuleError{Field: "confirmPassword", Message: "Las contraseñas no coinciden."}
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return in, fmt.Errorf("hash password: %w", err)
	}
	in.PasswordHash = hash
	if current != nil {
		in.LastLogin = current.LastLogin
	}
	return in, nil
}

func validateScheduleUser(u models.ScheduleUser) error {
	if u.Role == models.RoleDoctor && u.SpecialistID == nil {
		return &crud.RuleError{Field: "specialistId", Message: "Un usuario doctor debe estar vinculado a un especialista."}
	}
	return nil
}

// ReminderTemplateSchema manages the reminder messages of each center. The
// toggle flips the active flag.
func ReminderTemplateSchema(now func() time.Time) *crud.Schema[models.ReminderTemplate, uuid.UUID] {
	return &crud.Schema[models.ReminderTemplate, uuid.UUID]{
		Name: "reminder template",
		Fields: []crud.Field{
			{Name: "medicalCenterId", Label: "Centro médico", Kind: crud.KindText, Required: true},
			{Name: "message", Label: "Mensaje", Kind: crud.KindTextarea, Required: true},
		},
		Defaults: func() models.ReminderTemplate {
			return models.ReminderTemplate{IsActive: true}
		},
		NewID: func(context.Context, models.ReminderTemplate, store.Repository[models.ReminderTemplate, uuid.UUID]) (uuid.UUID, error) {
			return uuid.New(), nil
		},
		WithID: func(t models.ReminderTemplate, id uuid.UUID) models.ReminderTemplate { t.ID = id; return t },
		ToggleStatus: func(t models.ReminderTemplate) models.ReminderTemplate {
			t.IsActive = !t.IsActive
			t.UpdatedAt = now()
			return t
		},
		Prepare: func(current *models.ReminderTemplate, in models.ReminderTemplate) (models.ReminderTemplate, error) {
			in.UpdatedAt = now()
			if current == nil {
				in.CreatedAt = in.UpdatedAt
			} else {
				in.CreatedAt = current.CreatedAt
			}
			return in, nil
		},
		Validate: func(t models.ReminderTemplate) error {
			if strings.TrimSpace(t.Message) == "" {
				return &crud.RuleError{Field: "message", Message: "El mensaje es obligatorio."}
			}
			if strings.TrimSpace(t.MedicalCenterID) == "" {
				return &crud.RuleError{Field: "medicalCenterId", Message: "El centro médico es obligatorio."}
			}
			return nil
		},
	}
}
