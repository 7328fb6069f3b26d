package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"parish/config"
	"parish/infras/otel/mocks"
	appointmentMocks "parish/internal/domains/appointment/mocks"
	sacramentMocks "parish/internal/domains/sacrament/mocks"
	slotMocks "parish/internal/domains/slot/mocks"
	"parish/internal/domains/slot/model"
	"parish/internal/domains/slot/model/dto"
	"parish/internal/domains/slot/service"
	cacheMocks "parish/shared/cache/mocks"
	"parish/shared/constant"
	"parish/shared/failure"
)

func newService(t *testing.T) (service.TimeSlot, *slotMocks.MockTimeSlot, *sacramentMocks.MockSacramentType, *appointmentMocks.MockAppointment, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := slotMocks.NewMockTimeSlot(ctrl)
	mockSacramentRepo := sacramentMocks.NewMockSacramentType(ctrl)
	mockApptRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSacramentRepo, mockApptRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockSacramentRepo, mockApptRepo, mockCache
}

func allowInvalidation(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestTimeSlotService_Create(t *testing.T) {
	svc, mockRepo, mockSacramentRepo, _, mockCache := newService(t)

	allowInvalidation(mockCache)

	tests := []struct {
		name      string
		req       dto.CreateTimeSlotRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateTimeSlotRequest{
				Date: "2026-09-01",
				Time: "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "invalid date",
			req: dto.CreateTimeSlotRequest{
				Date: "01-09-2026",
				Time: "10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "duplicate date and time",
			req: dto.CreateTimeSlotRequest{
				Date: "2026-09-01",
				Time: "10:00",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "unknown sacrament type",
			req: dto.CreateTimeSlotRequest{
				Date:            "2026-09-01",
				Time:            "10:00",
				SacramentTypeID: "a3bb189e-8bf9-4888-9912-ace4e6543002",
			},
			setupMock: func() {
				mockSacramentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeSlotService_BulkCreate(t *testing.T) {
	svc, mockRepo, _, _, mockCache := newService(t)

	allowInvalidation(mockCache)

	t.Run("mixed batch reports created and skipped", func(t *testing.T) {
		// First item is new, second duplicates the first within the batch,
		// third duplicates an existing row, fourth has a bad date.
		req := dto.BulkCreateTimeSlotsRequest{
			Slots: []dto.CreateTimeSlotRequest{
				{Date: "2026-09-01", Time: "10:00"},
				{Date: "2026-09-01", Time: "10:00"},
				{Date: "2026-09-02", Time: "10:00"},
				{Date: "bad-date", Time: "10:00"},
			},
		}

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
		res, err := svc.BulkCreate(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.CreatedCount)
		assert.Equal(t, 3, res.SkippedCount)
		assert.Len(t, res.CreatedSlots, 1)
		assert.Len(t, res.SkippedSlots, 3)
	})

	t.Run("insert error aborts batch", func(t *testing.T) {
		req := dto.BulkCreateTimeSlotsRequest{
			Slots: []dto.CreateTimeSlotRequest{
				{Date: "2026-09-01", Time: "10:00"},
			},
		}

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
		_, err := svc.BulkCreate(ctx, req)

		assert.Error(t, err)
	})
}

func TestTimeSlotService_GetAvailable(t *testing.T) {
	svc, mockRepo, _, _, mockCache := newService(t)

	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates availability per date", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		slots := []model.TimeSlot{
			{ID: "slot-1", SlotDate: day1, TimeLabel: "10:00", Status: model.StatusAvailable},
		}

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(slots, nil)

		counts := []model.DateCount{
			{SlotDate: day1, TotalSlots: 2, AvailableSlots: 1, BookedSlots: 1},
			{SlotDate: day2, TotalSlots: 2, AvailableSlots: 0, BookedSlots: 2},
		}

		mockRepo.EXPECT().
			CountByDate(gomock.Any(), gomock.Any()).
			Return(counts, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAvailable(context.Background(), "", "2026-09-01", "2026-09-30")

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 1)
		assert.Len(t, res.DateAvailability, 2)

		assert.True(t, res.DateAvailability["2026-09-01"].IsAvailable)
		assert.False(t, res.DateAvailability["2026-09-01"].IsFullyBooked)
		assert.True(t, res.DateAvailability["2026-09-02"].IsFullyBooked)
		assert.False(t, res.DateAvailability["2026-09-02"].IsAvailable)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.GetAvailable(context.Background(), "", "", "")

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAvailable(context.Background(), "", "", "")

		assert.Error(t, err)
	})
}

func TestTimeSlotService_Update(t *testing.T) {
	svc, mockRepo, _, _, mockCache := newService(t)

	allowInvalidation(mockCache)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	current := model.TimeSlot{ID: "slot-1", SlotDate: day, TimeLabel: "10:00", Status: model.StatusAvailable}

	tests := []struct {
		name      string
		req       dto.UpdateTimeSlotRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateTimeSlotRequest{Time: "11:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateTimeSlotRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "not found",
			req:  dto.UpdateTimeSlotRequest{Time: "11:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.TimeSlot{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "new date and time collide with another slot",
			req:  dto.UpdateTimeSlotRequest{Time: "11:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Update(ctx, tt.req, "slot-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeSlotService_EnableDisable(t *testing.T) {
	svc, mockRepo, _, mockApptRepo, mockCache := newService(t)

	allowInvalidation(mockCache)

	tests := []struct {
		name      string
		op        func(ctx context.Context, id string) error
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "disable succeeds without active appointment",
			op:   svc.Disable,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockApptRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "disable refused while appointment is active",
			op:   svc.Disable,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockApptRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "enable succeeds",
			op:   svc.Enable,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockApptRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "enable on unknown slot",
			op:   svc.Enable,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := tt.op(ctx, "slot-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
