package booking

import (
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// PostgreSQL коды нарушений ограничений
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)
