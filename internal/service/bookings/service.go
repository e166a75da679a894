package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CrewBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	cache        WindowsCache
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache WindowsCache,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cache:        cache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут его клиент, назначенный crew и администратор
func (s *Service) GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%s", id, actor.ID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := authz.Authorize(actor, authz.ActionBookingView, authz.BookingResource(booking)); err != nil {
		s.logger.Warn("GetByID: %v", err)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией
// Клиент видит только свои бронирования, crew - только назначенные ему, администратор - все
func (s *Service) List(ctx context.Context, actor authz.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for actor=%s role=%s", actor.ID, actor.Role)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("List: endDate before startDate")
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	// Сужаем фильтр по роли
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleClient:
		id := actor.ID
		filter.ClientID = &id
	case domain.RoleCrew:
		id := actor.ID
		filter.CrewID = &id
	default:
		s.logger.Warn("List: unknown role=%s", actor.Role)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for actor=%s", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в served или canceled.
// Чтение, проверка перехода и запись выполняются в одной транзакции с блокировкой строки.
// После отмены интервал освобождается, поэтому кэш окон crew на дату сбрасывается.
func (s *Service) UpdateStatus(ctx context.Context, actor authz.Actor, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by actor=%s", id, req.Status, actor.ID)

	// 1. Валидация входных данных
	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var reason *string
	if req.CancellationReason != nil {
		trimmed := strings.TrimSpace(*req.CancellationReason)
		if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		if next == domain.StatusCanceled && trimmed != "" {
			reason = &trimmed
		}
	}

	action := authz.ActionBookingServe
	if next == domain.StatusCanceled {
		action = authz.ActionBookingCancel
	}

	var (
		booking  *domain.Booking
		previous domain.BookingStatus
	)

	// 2. Переход статуса в транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой (FOR UPDATE)
		b, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		// 2.2. Проверка прав
		if err := authz.Authorize(actor, action, authz.BookingResource(b)); err != nil {
			s.logger.Warn("UpdateStatus: %v", err)
			return ErrAccessDenied
		}

		// 2.3. Проверка перехода по машине состояний
		if err := b.TransitionTo(next); err != nil {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		// 2.4. Условное обновление по текущему статусу
		if err := s.bookingRepo.UpdateStatus(txCtx, id, b.Status, next, reason); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				s.logger.Warn("UpdateStatus: booking id=%d changed concurrently", id)
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		previous = b.Status
		now := s.timeProvider.Now()
		b.Status = next
		b.UpdatedAt = now
		if next == domain.StatusCanceled {
			b.CancellationReason = reason
			b.CanceledAt = &now
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("UpdateStatus", err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, previous, next)

	// 3. Отмена освобождает интервал
	if next == domain.StatusCanceled {
		if err := s.cache.Invalidate(ctx, booking.CrewID, booking.BookingDate); err != nil {
			s.logger.Warn("UpdateStatus: failed to invalidate windows cache: %v", err)
		}
	}

	// 4. Публикуем событие
	payload := events.StatusChangedPayload{
		BookingPayload:     events.BookingSnapshot(booking),
		PreviousStatus:     previous,
		CancellationReason: booking.CancellationReason,
	}
	s.publish(ctx, "UpdateStatus", events.RoutingBookingStatusChanged, payload)

	return models.FromDomainBooking(booking), nil
}

// MarkPaid фиксирует оплату бронирования.
// Оплата независима от статуса: допустима для pending и served, запрещена для canceled и повторно.
func (s *Service) MarkPaid(ctx context.Context, actor authz.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaid: booking id=%d by actor=%s", id, actor.ID)

	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой (FOR UPDATE)
		b, err := s.getBooking(txCtx, "MarkPaid", id)
		if err != nil {
			return err
		}

		// 2. Проверка прав
		if err := authz.Authorize(actor, authz.ActionBookingPay, authz.BookingResource(b)); err != nil {
			s.logger.Warn("MarkPaid: %v", err)
			return ErrAccessDenied
		}

		// 3. Проверка возможности оплаты
		if err := b.CheckPayable(); err != nil {
			s.logger.Warn("MarkPaid: booking id=%d: %v", id, err)
			if errors.Is(err, domain.ErrAlreadyPaid) {
				return ErrAlreadyPaid
			}
			return ErrPaymentOnCanceled
		}

		// 4. Условное обновление
		paidAt := s.timeProvider.Now()
		if err := s.bookingRepo.MarkPaid(txCtx, id, paidAt); err != nil {
			if errors.Is(err, bookingRepo.ErrPaymentConflict) {
				s.logger.Warn("MarkPaid: booking id=%d changed concurrently", id)
				return ErrAlreadyPaid
			}
			s.logger.Error("MarkPaid: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
		}

		b.IsPaid = true
		b.PaidAt = &paidAt
		b.UpdatedAt = paidAt
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.wrapTxError("MarkPaid", err)
	}

	s.logger.Info("MarkPaid: booking id=%d marked paid", id)
	s.publish(ctx, "MarkPaid", events.RoutingBookingPaid, events.BookingSnapshot(booking))

	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// getBooking читает бронирование и переводит ошибки репозитория в ошибки сервиса
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// wrapTxError оставляет ошибки сервиса как есть, остальное считает внутренней ошибкой
func (s *Service) wrapTxError(op string, err error) error {
	for _, known := range []error{
		ErrBookingNotFound, ErrAccessDenied, ErrInvalidTransition,
		ErrAlreadyPaid, ErrPaymentOnCanceled, ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
}

// publish отправляет событие; ошибка брокера не отменяет зафиксированное изменение
func (s *Service) publish(ctx context.Context, op, eventType string, payload interface{}) {
	event := events.NewEnvelope(eventType, s.timeProvider.Now(), payload)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("%s: failed to publish %s: %v", op, eventType, err)
	}
}
