package dto

import (
	"parish/internal/domains/slot/model"
	"parish/shared"
	gDto "parish/shared/dto"
	gModel "parish/shared/model"
	"parish/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	DateFormat = "2006-01-02"
)

type CreateTimeSlotRequest struct {
	Date            string `json:"date"              validate:"required"`
	Time            string `json:"time"              validate:"required,max=50"`
	Status          string `json:"status"            validate:"omitempty,oneof=available disabled"`
	SacramentTypeID string `json:"sacrament_type_id" validate:"omitempty,uuid4"`
}

func (c *CreateTimeSlotRequest) ToModel(user string) (model.TimeSlot, error) {
	slotDate, err := time.Parse(DateFormat, c.Date)
	if err != nil {
		return model.TimeSlot{}, err
	}

	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	var sacramentTypeID *string
	if c.SacramentTypeID != "" {
		sacramentTypeID = &c.SacramentTypeID
	}

	return model.TimeSlot{
		ID:              uuid.NewString(),
		SlotDate:        slotDate,
		TimeLabel:       c.Time,
		Status:          status,
		SacramentTypeID: sacramentTypeID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BulkCreateTimeSlotsRequest struct {
	Slots []CreateTimeSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

type UpdateTimeSlotRequest struct {
	Date            string `json:"date"              validate:"omitempty"`
	Time            string `db:"time_label"          json:"time"              validate:"omitempty,max=50"`
	SacramentTypeID string `db:"sacrament_type_id"   json:"sacrament_type_id" validate:"omitempty,uuid4"`
}

type TimeSlotResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Status          string  `json:"status"`
	SacramentTypeID *string `json:"sacrament_type_id,omitempty"`
	gDto.Metadata
}

func (r *TimeSlotResponse) FromModel(model model.TimeSlot) {
	r.ID = model.ID
	r.Date = model.SlotDate.Format(DateFormat)
	r.Time = model.TimeLabel
	r.Status = model.Status
	r.SacramentTypeID = model.SacramentTypeID
	r.Metadata.FromModel(model.Metadata)
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}

// DateAvailability summarizes one date so clients can render a calendar
// without fetching each slot.
type DateAvailability struct {
	TotalSlots     int  `json:"total_slots"`
	AvailableSlots int  `json:"available_slots"`
	BookedSlots    int  `json:"booked_slots"`
	IsFullyBooked  bool `json:"is_fully_booked"`
	IsAvailable    bool `json:"is_available"`
}

type AvailableSlotsResponse struct {
	Slots            []TimeSlotResponse          `json:"slots"`
	DateAvailability map[string]DateAvailability `json:"date_availability"`
}

func (r *AvailableSlotsResponse) FromModels(slots []model.TimeSlot, counts []model.DateCount) {
	r.Slots = make([]TimeSlotResponse, len(slots))
	for i, mod := range slots {
		r.Slots[i].FromModel(mod)
	}

	r.DateAvailability = make(map[string]DateAvailability, len(counts))
	for _, count := range counts {
		r.DateAvailability[count.SlotDate.Format(DateFormat)] = DateAvailability{
			TotalSlots:     count.TotalSlots,
			AvailableSlots: count.AvailableSlots,
			BookedSlots:    count.BookedSlots,
			IsFullyBooked:  count.AvailableSlots == 0,
			IsAvailable:    count.AvailableSlots > 0,
		}
	}
}

type SkippedTimeSlot struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

type BulkCreateTimeSlotsResponse struct {
	CreatedCount int                `json:"created_count"`
	SkippedCount int                `json:"skipped_count"`
	CreatedSlots []TimeSlotResponse `json:"created_slots"`
	SkippedSlots []SkippedTimeSlot  `json:"skipped_slots"`
}
