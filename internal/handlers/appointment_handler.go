package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/vet-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/vet-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	confirm      *ucAppointment.ConfirmAppointment
	cancel       *ucAppointment.CancelAppointment
	checkIn      *ucAppointment.CheckInAppointment
	begin        *ucAppointment.BeginTreatment
	end          *ucAppointment.EndTreatment
	reschedule   *ucAppointment.RescheduleAppointment
	get          *ucAppointment.GetAppointment
	list         *ucAppointment.ListAppointments
	listGuardian *ucAppointment.ListGuardianAppointments
	agenda       *ucAppointment.ListProfessionalAgenda
	update       *ucAppointment.UpdateAppointment
	stats        *ucAppointment.GetAppointmentStats

	loc *time.Location
}

func NewAppointmentHandler(d ucAppointment.Deps, loc *time.Location) *AppointmentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentHandler{
		availability: ucAppointment.NewGetAvailability(d),
		create:       ucAppointment.NewCreateAppointment(d),
		confirm:      ucAppointment.NewConfirmAppointment(d),
		cancel:       ucAppointment.NewCancelAppointment(d),
		checkIn:      ucAppointment.NewCheckInAppointment(d),
		begin:        ucAppointment.NewBeginTreatment(d),
		end:          ucAppointment.NewEndTreatment(d),
		reschedule:   ucAppointment.NewRescheduleAppointment(d),
		get:          ucAppointment.NewGetAppointment(d),
		list:         ucAppointment.NewListAppointments(d),
		listGuardian: ucAppointment.NewListGuardianAppointments(d),
		agenda:       ucAppointment.NewListProfessionalAgenda(d),
		update:       ucAppointment.NewUpdateAppointment(d),
		stats:        ucAppointment.NewGetAppointmentStats(d),
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PetID          string `json:"mascota_id" binding:"required"`
	ServiceID      string `json:"servicio_id" binding:"required"`
	ProfessionalID string `json:"profesional_id" binding:"required"`
	StartTime      string `json:"fecha_hora" binding:"required"`
	Reason         string `json:"motivo_consulta"`
	Notes          string `json:"observaciones"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"motivo_cancelacion"`
}

type CheckInRequest struct {
	RoomID string `json:"consultorio_id"`
}

type RescheduleRequest struct {
	StartTime string `json:"fecha_hora" binding:"required"`
}

// UpdateAppointmentRequest edits free text; fecha_hora reschedules.
type UpdateAppointmentRequest struct {
	Reason    *string `json:"motivo_consulta"`
	Notes     *string `json:"observaciones"`
	StartTime *string `json:"fecha_hora"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	profStr := c.Query("profesional_id")
	dateStr := c.Query("fecha")
	serviceStr := c.Query("servicio_id")

	if profStr == "" || dateStr == "" || serviceStr == "" {
		httperr.BadRequest(c, "missing_params")
		return
	}

	profID, err := validators.ParseID(profStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_id")
		return
	}
	serviceID, err := validators.ParseID(serviceStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_id")
		return
	}
	date, err := parseDateInClinic(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessionalID: profID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fecha":                dateStr,
		"profesional_id":       profID,
		"horarios_disponibles": slots,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	petID, err1 := validators.ParseID(req.PetID)
	serviceID, err2 := validators.ParseID(req.ServiceID)
	profID, err3 := validators.ParseID(req.ProfessionalID)
	if err := errors.Join(err1, err2, err3); err != nil {
		httperr.BadRequest(c, "invalid_id")
		return
	}

	start, err := parseDateTimeInClinic(h.loc, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:          middleware.Actor(c),
		PetID:          petID,
		ServiceID:      serviceID,
		ProfessionalID: profID,
		Start:          start,
		Reason:         req.Reason,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	in := ucAppointment.ListAppointmentsInput{
		Actor:  middleware.Actor(c),
		Status: c.Query("estado"),
	}

	from, to, err := parseDayRange(h.loc, c.Query("fecha_desde"), c.Query("fecha_hasta"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date")
		return
	}
	in.From, in.To = from, to

	profID, err := validators.OptionalID(c.Query("profesional_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id")
		return
	}
	in.ProfessionalID = profID

	in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	page, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	out, err := h.listGuardian.Execute(c.Request.Context(), middleware.Actor(c), c.Query("estado"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) ProfessionalAgenda(c *gin.Context) {
	var date *time.Time
	if s := c.Query("fecha"); s != "" {
		d, err := parseDateInClinic(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date")
			return
		}
		date = &d
	}

	list, err := h.agenda.Execute(c.Request.Context(), middleware.Actor(c), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ap, err := h.confirm.Execute(c.Request.Context(), middleware.Actor(c), id)
	respondAppointment(c, ap, err)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// the body is optional
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id, req.Reason)
	respondAppointment(c, ap, err)
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	roomID := uuid.Nil
	if req.RoomID != "" {
		parsed, err := validators.ParseID(req.RoomID)
		if err != nil {
			httperr.BadRequest(c, "invalid_id")
			return
		}
		roomID = parsed
	}

	ap, err := h.checkIn.Execute(c.Request.Context(), middleware.Actor(c), id, roomID)
	respondAppointment(c, ap, err)
}

func (h *AppointmentHandler) BeginTreatment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ap, err := h.begin.Execute(c.Request.Context(), middleware.Actor(c), id)
	respondAppointment(c, ap, err)
}

func (h *AppointmentHandler) EndTreatment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ap, err := h.end.Execute(c.Request.Context(), middleware.Actor(c), id)
	respondAppointment(c, ap, err)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	start, err := parseDateTimeInClinic(h.loc, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time")
		return
	}

	res, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		Actor:         middleware.Actor(c),
		AppointmentID: id,
		Start:         start,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request")
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		Actor:         middleware.Actor(c),
		AppointmentID: id,
		Reason:        req.Reason,
		Notes:         req.Notes,
	}
	if req.StartTime != nil {
		start, err := parseDateTimeInClinic(h.loc, *req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time")
			return
		}
		in.Start = &start
	}

	res, err := h.update.Execute(c.Request.Context(), in)
	respondAppointment(c, res, err)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context(), middleware.Actor(c))
	respondAppointment(c, out, err)
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := validators.ParseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id")
		return uuid.Nil, false
	}
	return id, true
}

func respondAppointment(c *gin.Context, ap any, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}
