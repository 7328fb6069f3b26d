package model

import (
	"fmt"
	sacramentModel "parish/internal/domains/sacrament/model"
	slotModel "parish/internal/domains/slot/model"
	"parish/shared/model"
	"time"
)

const (
	TableName  = "sacrament_appointments"
	EntityName = "sacrament_appointment"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldSacramentTypeID = "sacrament_type_id"
	FieldPreferredDate   = "preferred_date"
	FieldTimeSlotID      = "time_slot_id"
	FieldStatus          = "status"
	FieldRejectionReason = "rejection_reason"
	FieldNotes           = "notes"
)

// Appointment statuses. pending and approved hold an exclusive claim on the
// slot; rejected is terminal and claims nothing.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Appointment struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	SacramentTypeID string    `db:"sacrament_type_id"`
	PreferredDate   time.Time `db:"preferred_date"`
	TimeSlotID      string    `db:"time_slot_id"`
	Status          string    `db:"status"`
	RejectionReason *string   `db:"rejection_reason"`
	Notes           *string   `db:"notes"`
	model.Metadata

	SacramentTypeName string    `db:"sacrament_type_name" table:"sacrament_types" column:"name"`
	SlotDate          time.Time `db:"slot_date"           table:"time_slots"`
	SlotTimeLabel     string    `db:"slot_time_label"     table:"time_slots"     column:"time_label"`
	SlotStatus        string    `db:"slot_status"         table:"time_slots"     column:"status"`
}

// GetJoinQuery hydrates type and slot details on every read through the
// generic repository.
func (Appointment) GetJoinQuery() string {
	return fmt.Sprintf(
		"JOIN %[2]s ON %[2]s.id = %[1]s.sacrament_type_id JOIN %[3]s ON %[3]s.id = %[1]s.time_slot_id",
		TableName, sacramentModel.TableName, slotModel.TableName,
	)
}

// IsActive reports whether the appointment still claims its slot.
func (a Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}
