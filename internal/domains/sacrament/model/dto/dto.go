package dto

import (
	"parish/internal/domains/sacrament/model"
	"parish/shared"
	gDto "parish/shared/dto"
	gModel "parish/shared/model"
	"parish/shared/timezone"

	"github.com/google/uuid"
)

type CreateSacramentTypeRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateSacramentTypeRequest) ToModel(user string) model.SacramentType {
	return model.SacramentType{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSacramentTypeRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
}

type SacramentTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	gDto.Metadata
}

func (r *SacramentTypeResponse) FromModel(model model.SacramentType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetSacramentTypesResponse struct {
	SacramentTypes []SacramentTypeResponse `json:"sacrament_types"`
	TotalPage      int                     `json:"total_page"`
	TotalData      int                     `json:"total_data"`
}

func (r *GetSacramentTypesResponse) FromModels(models []model.SacramentType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.SacramentTypes = make([]SacramentTypeResponse, len(models))
	for i, mod := range models {
		r.SacramentTypes[i].FromModel(mod)
	}
}
