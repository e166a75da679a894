package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/catalog"
	identityClient "github.com/m04kA/SMC-CrewBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-CrewBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	engine       AvailabilityChecker
	crew         CrewDirectory
	cache        WindowsCache
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	engine AvailabilityChecker,
	crew CrewDirectory,
	cache WindowsCache,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		engine:       engine,
		crew:         crew,
		cache:        cache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции;
// ограничение bookings_no_overlap в БД остается последним рубежом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%s, client=%s, crew=%s, service=%d, date=%s, interval=[%s, %s)",
		req.Actor.ID, req.ClientID, req.CrewID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав
	if err := authz.Authorize(req.Actor, authz.ActionBookingCreate, authz.Resource{ClientID: req.ClientID}); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
	}

	// 3. Дата и время не должны быть в прошлом
	if err := validateDate(req.Date, req.StartTime, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем профиль crew (при недоступности сервиса пользователей продолжаем без него)
	var crewFullName *string
	member, err := uc.crew.GetCrewMember(ctx, req.CrewID)
	switch {
	case err == nil:
		crewFullName = &member.FullName
	case errors.Is(err, identityClient.ErrUserNotFound), errors.Is(err, identityClient.ErrNotCrew):
		uc.logger.Warn("CreateBooking: crew id=%s not found: %v", req.CrewID, err)
		return nil, ErrCrewNotFound
	case errors.Is(err, identityClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: crew id=%s not verified: %v", req.CrewID, err)
	default:
		uc.logger.Error("CreateBooking: failed to get crew id=%s: %v", req.CrewID, err)
		return nil, fmt.Errorf("%w: failed to get crew: %v", ErrInternal, err)
	}

	// 6. Номер бронирования и стоимость
	seq, err := uc.bookingRepo.NextNumberSeq(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get number sequence: %v", err)
		return nil, fmt.Errorf("%w: failed to get number sequence: %v", ErrInternal, err)
	}

	number, err := domain.NewBookingNumber(seq)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate booking number: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		Number:      number,
		ClientID:    req.ClientID,
		CrewID:      req.CrewID,
		ServiceID:   service.ID,
		BookingDate: req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      domain.StatusPending,
		TotalPrice:  domain.CalculatePrice(service.RatePerHour, req.StartTime, req.EndTime),
		Notes:       req.Notes,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем неотмененные бронирования crew на дату с блокировкой (FOR UPDATE)
		decision, err := uc.engine.CheckAvailability(txCtx, req.CrewID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}

		// 7.2. Отказ - бизнес-результат
		if !decision.Accepted {
			uc.logger.Warn("CreateBooking: slot not available, conflicts=%v", decision.Conflicts)
			return &ConflictError{Conflicts: decision.Conflicts}
		}

		// 7.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s", result.ID, result.Number)

	// 8. После фиксации сбрасываем кэш окон и публикуем событие
	if err := uc.cache.Invalidate(ctx, result.CrewID, result.BookingDate); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate windows cache: %v", err)
	}

	event := events.NewEnvelope(events.RoutingBookingCreated, uc.timeProvider.Now(), events.BookingSnapshot(result))
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, result.ID, err)
	}

	return &Response{
		ID:           result.ID,
		Number:       result.Number,
		ClientID:     result.ClientID,
		CrewID:       result.CrewID,
		ServiceID:    result.ServiceID,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		IsPaid:       result.IsPaid,
		TotalPrice:   result.TotalPrice,
		ServiceName:  service.Name,
		CrewFullName: crewFullName,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// mapTxError переводит ошибки транзакции в ошибки use case.
// Конкурентная вставка того же интервала проявляется как конфликт сериализации
// или нарушение ограничения исключения; обе ситуации означают занятый интервал. Повторов нет.
func (uc *UseCase) mapTxError(err error) error {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		return conflict
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("CreateBooking: rejected by exclusion constraint: %v", err)
		return ErrSlotNotAvailable
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateBooking: rejected by serialization conflict: %v", err)
		return ErrSlotNotAvailable
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
