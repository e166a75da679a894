package get_free_windows

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CrewID == uuid.Nil {
		return fmt.Errorf("%w: crewID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Quantum != nil && *req.Quantum != 0 {
		if err := availability.ValidateQuantum(*req.Quantum); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
	}

	return nil
}
