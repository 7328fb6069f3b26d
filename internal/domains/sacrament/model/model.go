package model

import "parish/shared/model"

const (
	TableName  = "sacrament_types"
	EntityName = "sacrament_type"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

type SacramentType struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	model.Metadata
}
