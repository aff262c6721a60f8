package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID             uuid.UUID  `json:"id"`
	StartTime      time.Time  `json:"fecha_hora"`
	EndTime        time.Time  `json:"fecha_hora_fin"`
	Status         string     `json:"estado"`
	PetID          uuid.UUID  `json:"mascota_id"`
	PetName        string     `json:"mascota_nombre"`
	ServiceID      uuid.UUID  `json:"servicio_id"`
	ServiceName    string     `json:"servicio_nombre"`
	ProfessionalID uuid.UUID  `json:"profesional_id"`
	RoomID         *uuid.UUID `json:"consultorio_id"`
	Reason         string     `json:"motivo_consulta"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:             ap.ID,
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         ap.Status,
		PetID:          ap.PetID,
		ServiceID:      ap.ServiceID,
		ProfessionalID: ap.ProfessionalID,
		RoomID:         ap.RoomID,
		Reason:         ap.Reason,
	}
	if ap.Pet != nil {
		out.PetName = ap.Pet.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}

func FromAppointments(list []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		out = append(out, FromAppointment(ap))
	}
	return out
}
