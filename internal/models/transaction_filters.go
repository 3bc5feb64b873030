package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries
type TransactionFilters struct {
	UserID          uuid.UUID
	TransactionType string
	Source          string
	CategoryID      uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeChildren bool
	Tag             string
	Offset          int
	Limit           int
}
