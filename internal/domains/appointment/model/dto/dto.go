package dto

import (
	"parish/internal/domains/appointment/model"
	slotDto "parish/internal/domains/slot/model/dto"
	"parish/shared"
	gDto "parish/shared/dto"
	gModel "parish/shared/model"
	"parish/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	SacramentTypeID string `json:"sacrament_type"  validate:"required,uuid4"`
	PreferredDate   string `json:"preferred_date"  validate:"required"`
	TimeSlotID      string `json:"time_slot_id"    validate:"required,uuid4"`
	Notes           string `json:"notes"           validate:"omitempty,max=500"`
}

func (b *BookAppointmentRequest) ToModel(requesterID string) (model.Appointment, error) {
	preferredDate, err := time.Parse(slotDto.DateFormat, b.PreferredDate)
	if err != nil {
		return model.Appointment{}, err
	}

	var notes *string
	if b.Notes != "" {
		notes = &b.Notes
	}

	return model.Appointment{
		ID:              uuid.NewString(),
		UserID:          requesterID,
		SacramentTypeID: b.SacramentTypeID,
		PreferredDate:   preferredDate,
		TimeSlotID:      b.TimeSlotID,
		Status:          model.StatusPending,
		Notes:           notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  requesterID,
			ModifiedBy: requesterID,
		},
	}, nil
}

type RejectAppointmentRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required,max=500"`
}

type AppointmentResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	SacramentTypeID string  `json:"sacrament_type_id"`
	SacramentType   string  `json:"sacrament_type"`
	PreferredDate   string  `json:"preferred_date"`
	TimeSlotID      string  `json:"time_slot_id"`
	SlotDate        string  `json:"slot_date"`
	SlotTime        string  `json:"slot_time"`
	SlotStatus      string  `json:"slot_status"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.SacramentTypeID = model.SacramentTypeID
	r.SacramentType = model.SacramentTypeName
	r.PreferredDate = model.PreferredDate.Format(slotDto.DateFormat)
	r.TimeSlotID = model.TimeSlotID
	r.SlotDate = model.SlotDate.Format(slotDto.DateFormat)
	r.SlotTime = model.SlotTimeLabel
	r.SlotStatus = model.SlotStatus
	r.Status = model.Status
	r.RejectionReason = model.RejectionReason
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}
