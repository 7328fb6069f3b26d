package model

import (
	"parish/shared/model"
	"time"
)

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	FieldID              = "id"
	FieldSlotDate        = "slot_date"
	FieldTimeLabel       = "time_label"
	FieldStatus          = "status"
	FieldSacramentTypeID = "sacrament_type_id"
)

// Slot statuses. A slot becomes booked only through the appointment
// coordinator; enable/disable are direct admin actions.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
	StatusDisabled  = "disabled"
)

type TimeSlot struct {
	ID              string    `db:"id"`
	SlotDate        time.Time `db:"slot_date"`
	TimeLabel       string    `db:"time_label"`
	Status          string    `db:"status"`
	SacramentTypeID *string   `db:"sacrament_type_id"`
	model.Metadata
}

// DateCount aggregates slot counts for one calendar date.
type DateCount struct {
	SlotDate       time.Time `db:"slot_date"`
	TotalSlots     int       `db:"total_slots"`
	AvailableSlots int       `db:"available_slots"`
	BookedSlots    int       `db:"booked_slots"`
}
