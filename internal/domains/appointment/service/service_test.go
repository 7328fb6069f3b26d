package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"parish/config"
	"parish/infras/otel/mocks"
	postgresMocks "parish/infras/postgres/mocks"
	appointmentMocks "parish/internal/domains/appointment/mocks"
	"parish/internal/domains/appointment/model"
	"parish/internal/domains/appointment/model/dto"
	notifierMocks "parish/internal/domains/appointment/notifier/mocks"
	"parish/internal/domains/appointment/service"
	sacramentMocks "parish/internal/domains/sacrament/mocks"
	sacramentModel "parish/internal/domains/sacrament/model"
	slotModel "parish/internal/domains/slot/model"
	slotMocks "parish/internal/domains/slot/mocks"
	cacheMocks "parish/shared/cache/mocks"
	gDto "parish/shared/dto"
	"parish/shared/failure"
	gModel "parish/shared/model"
)

type serviceMocks struct {
	repo          *appointmentMocks.MockAppointment
	slotRepo      *slotMocks.MockTimeSlot
	sacramentRepo *sacramentMocks.MockSacramentType
	txor          *postgresMocks.MockTransactor
	notifier      *notifierMocks.MockNotifier
	cache         *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Appointment, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:          appointmentMocks.NewMockAppointment(ctrl),
		slotRepo:      slotMocks.NewMockTimeSlot(ctrl),
		sacramentRepo: sacramentMocks.NewMockSacramentType(ctrl),
		txor:          postgresMocks.NewMockTransactor(ctrl),
		notifier:      notifierMocks.NewMockNotifier(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.slotRepo, m.sacramentRepo, m.txor, m.notifier, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

// allowDispatch covers the post-commit goroutine: notification plus cache
// invalidation, both fire-and-forget.
func allowDispatch(m serviceMocks) {
	m.notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func expectTx(m serviceMocks) {
	m.txor.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestAppointmentService_Book(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	sacramentType := sacramentModel.SacramentType{ID: "type-1", Name: "Baptism"}
	availableSlot := slotModel.TimeSlot{ID: "slot-1", SlotDate: day, TimeLabel: "10:00", Status: slotModel.StatusAvailable}

	req := dto.BookAppointmentRequest{
		SacramentTypeID: "type-1",
		PreferredDate:   "2026-09-01",
		TimeSlotID:      "slot-1",
	}

	tests := []struct {
		name      string
		req       dto.BookAppointmentRequest
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful booking",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)

				expectTx(m)

				m.slotRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "slot-1").
					Return(availableSlot, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.slotRepo.EXPECT().
					ClaimTx(gomock.Any(), gomock.Any(), "slot-1", "user-1").
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown sacrament type",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentModel.SacramentType{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "invalid preferred date",
			req: dto.BookAppointmentRequest{
				SacramentTypeID: "type-1",
				PreferredDate:   "01/09/2026",
				TimeSlotID:      "slot-1",
			},
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "slot not found",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)

				expectTx(m)

				m.slotRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "slot-1").
					Return(slotModel.TimeSlot{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "slot already booked",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)

				expectTx(m)

				m.slotRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "slot-1").
					Return(slotModel.TimeSlot{ID: "slot-1", Status: slotModel.StatusBooked}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "disabled slot is not bookable",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)

				expectTx(m)

				m.slotRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "slot-1").
					Return(slotModel.TimeSlot{ID: "slot-1", Status: slotModel.StatusDisabled}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "claim lost to a concurrent booking",
			req:  req,
			setupMock: func(m serviceMocks) {
				m.sacramentRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sacramentType, nil)

				expectTx(m)

				m.slotRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "slot-1").
					Return(availableSlot, nil)

				m.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.slotRepo.EXPECT().
					ClaimTx(gomock.Any(), gomock.Any(), "slot-1", "user-1").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			allowDispatch(m)
			tt.setupMock(m)

			res, err := svc.Book(context.Background(), "user-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-1", res.UserID)
			assert.Equal(t, "Baptism", res.SacramentType)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, slotModel.StatusBooked, res.SlotStatus)
			assert.Equal(t, "2026-09-01", res.SlotDate)
			assert.Equal(t, "10:00", res.SlotTime)
		})
	}
}

// Notification dispatch is fire-and-forget after commit: a broker outage must
// never surface to the caller once the state change is committed.
func TestAppointmentService_Book_NotificationFailure(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	svc, m := newService(t)

	m.notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		Return(errors.New("broker unavailable")).
		AnyTimes()

	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.sacramentRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(sacramentModel.SacramentType{ID: "type-1", Name: "Baptism"}, nil)

	expectTx(m)

	m.slotRepo.EXPECT().
		GetTx(gomock.Any(), gomock.Any(), "slot-1").
		Return(slotModel.TimeSlot{ID: "slot-1", SlotDate: day, TimeLabel: "10:00", Status: slotModel.StatusAvailable}, nil)

	m.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	m.slotRepo.EXPECT().
		ClaimTx(gomock.Any(), gomock.Any(), "slot-1", "user-1").
		Return(true, nil)

	res, err := svc.Book(context.Background(), "user-1", dto.BookAppointmentRequest{
		SacramentTypeID: "type-1",
		PreferredDate:   "2026-09-01",
		TimeSlotID:      "slot-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestAppointmentService_Approve(t *testing.T) {
	pending := model.Appointment{ID: "appt-1", UserID: "user-1", TimeSlotID: "slot-1", Status: model.StatusPending}

	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful approval",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(pending, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(model.Appointment{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "already approved",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(model.Appointment{ID: "appt-1", Status: model.StatusApproved}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			allowDispatch(m)
			tt.setupMock(m)

			err := svc.Approve(context.Background(), "admin-1", "appt-1")

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

func TestAppointmentService_Reject(t *testing.T) {
	pending := model.Appointment{ID: "appt-1", UserID: "user-1", TimeSlotID: "slot-1", Status: model.StatusPending}
	req := dto.RejectAppointmentRequest{RejectionReason: "schedule conflict"}

	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "rejection releases the slot",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(pending, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.slotRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "slot-1", "admin-1").
					Return(true, nil)

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr: false,
		},
		{
			name: "rejection succeeds when slot stays disabled",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(pending, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.slotRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "slot-1", "admin-1").
					Return(false, nil)

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr: false,
		},
		{
			name: "already rejected",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(model.Appointment{ID: "appt-1", Status: model.StatusRejected}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "release error rolls the rejection back",
			setupMock: func(m serviceMocks) {
				expectTx(m)

				m.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), "appt-1").
					Return(pending, nil)

				m.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.slotRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "slot-1", "admin-1").
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			allowDispatch(m)
			tt.setupMock(m)

			err := svc.Reject(context.Background(), "admin-1", "appt-1", req)

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

func TestAppointmentService_Get(t *testing.T) {
	appointment := model.Appointment{
		ID:         "appt-1",
		UserID:     "user-1",
		TimeSlotID: "slot-1",
		Status:     model.StatusPending,
		Metadata:   gModel.Metadata{CreatedBy: "user-1"},
	}

	t.Run("cache miss loads from repository", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(appointment, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "appt-1")

		assert.NoError(t, err)
		assert.Equal(t, "appt-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Appointment{}, nil)

		_, err := svc.Get(context.Background(), "appt-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAppointmentService_GetMine(t *testing.T) {
	svc, m := newService(t)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	// The requester filter is prepended before delegation, so the listing can
	// never leak another user's appointments.
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error) {
			assert.NotEmpty(t, filter.Filters)

			return []model.Appointment{{ID: "appt-1", UserID: "user-1", Status: model.StatusPending}}, nil
		})

	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetMine(context.Background(), "user-1", gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Appointments, 1)
}
