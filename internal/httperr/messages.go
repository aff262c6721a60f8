package httperr

var messages = map[string]string{
	"invalid_request":        "Datos inválidos.",
	"invalid_id":             "Identificador inválido.",
	"invalid_date":           "Fecha inválida.",
	"invalid_date_or_time":   "Fecha u hora inválida.",
	"invalid_duration":       "Duración de servicio inválida.",
	"invalid_status":         "Estado de cita inválido.",
	"invalid_date_range":     "El rango de fechas es inválido.",
	"missing_params":         "Se requiere profesional_id, fecha y servicio_id.",
	"missing_reason":         "El motivo de consulta es requerido.",
	"nothing_to_update":      "No se indicó ningún campo a actualizar.",
	"outside_business_hours": "Fuera del horario de atención (09:00 a 18:00).",
	"in_the_past":            "No se puede agendar en el pasado.",
	"pet_not_approved":       "La mascota debe estar aprobada para agendar citas.",
	"room_required":          "Se requiere un consultorio para el check-in.",
	"appointment_not_found":  "Cita no encontrada.",
	"service_not_found":      "Servicio no encontrado.",
	"pet_not_found":          "Mascota no encontrada.",
	"professional_not_found": "Profesional no encontrado.",
	"guardian_not_found":     "No se encontró el perfil de tutor.",
	"room_not_found":         "Consultorio no encontrado.",
	"time_conflict":          "Horario no disponible: el profesional ya tiene una cita en ese horario.",
	"forbidden_role":         "No tienes permiso para realizar esta acción.",
	"not_owner":              "Esta cita o mascota no te pertenece.",
	"terminal_state":         "La cita ya está finalizada y no admite cambios.",
	"invalid_state":          "La cita no admite esta acción en su estado actual.",
	"treatment_not_started":  "La atención no ha sido iniciada.",
	"store_unavailable":      "Servicio de datos no disponible. Intenta nuevamente.",
	"internal_error":         "Error interno del servidor.",
	"missing_authorization":  "Token de autenticación requerido.",
	"invalid_token":          "Token inválido o expirado.",
	"user_not_found":         "Usuario no encontrado en el sistema.",
	"cannot_deactivate_self": "No puedes desactivar tu propia cuenta.",
	"account_disabled":       "Tu cuenta ha sido desactivada. Contacta al administrador.",
	"rate_limited":           "Has excedido el límite de peticiones. Intenta más tarde.",
}

// Message returns the user facing text for code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages["internal_error"]
}
