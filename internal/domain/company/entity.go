package company

import (
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
)

// Company is the single tenant of the system: a profile plus the
// versioned work settings every computation reads.
type Company struct {
	ID          string
	Name        string
	Address     *string
	PhoneNumber *string
	Settings    worktime.Settings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
