package dto_test

import (
	"testing"

	"parish/internal/domains/sacrament/model"
	"parish/internal/domains/sacrament/model/dto"
	gModel "parish/shared/model"
	"parish/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateSacramentTypeRequest_ToModel(t *testing.T) {
	req := dto.CreateSacramentTypeRequest{
		Name:        "Baptism",
		Description: "Sacrament of initiation",
	}

	userID := "test-user-id"
	model := req.ToModel(userID)

	assert.NotEmpty(t, model.ID, "expected ID to be generated")
	assert.Equal(t, req.Name, model.Name)
	assert.Equal(t, req.Description, model.Description)
	assert.Equal(t, userID, model.CreatedBy)
	assert.Equal(t, userID, model.ModifiedBy)
	assert.False(t, model.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, model.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestSacramentTypeResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	typeModel := model.SacramentType{
		ID:          "test-id",
		Name:        "Marriage",
		Description: "Sacrament of matrimony",
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.SacramentTypeResponse
	response.FromModel(typeModel)

	assert.Equal(t, typeModel.ID, response.ID)
	assert.Equal(t, typeModel.Name, response.Name)
	assert.Equal(t, typeModel.Description, response.Description)
	assert.Equal(t, typeModel.CreatedBy, response.CreatedBy)
	assert.Equal(t, typeModel.ModifiedBy, response.ModifiedBy)
}

func TestGetSacramentTypesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	types := []model.SacramentType{
		{
			ID:          "test-id-1",
			Name:        "Baptism",
			Description: "Sacrament of initiation",
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
		{
			ID:          "test-id-2",
			Name:        "Confirmation",
			Description: "Sacrament of strengthening",
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
	}

	totalData := 15
	limit := 10

	var response dto.GetSacramentTypesResponse
	response.FromModels(types, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage) // 15 items with limit 10 should give 2 pages
	assert.Len(t, response.SacramentTypes, len(types))

	for i, st := range response.SacramentTypes {
		assert.Equal(t, types[i].ID, st.ID)
		assert.Equal(t, types[i].Name, st.Name)
	}
}

func TestGetSacramentTypesResponse_FromModels_EmptyList(t *testing.T) {
	var types []model.SacramentType
	totalData := 0
	limit := 10

	var response dto.GetSacramentTypesResponse
	response.FromModels(types, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 1, response.TotalPage) // Function returns 1 when total is 0
	assert.Len(t, response.SacramentTypes, 0)
}
