package usecase

import (
	"time"

	"IndexBoard/internal/domain/models"
)

// ClockUseCase reports the current wall clock in the market timezone.
type ClockUseCase struct {
	loc *time.Location
	tz  string

	// now is swappable in tests.
	now func() time.Time
}

func NewClockUseCase(tz string, loc *time.Location) *ClockUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ClockUseCase{loc: loc, tz: tz, now: time.Now}
}

func (uc *ClockUseCase) Now() models.ClockInfo {
	t := uc.now().In(uc.loc)
	return models.ClockInfo{
		Time:     t.Format("15:04:05"),
		Date:     t.Format("02-01-2006"),
		Timezone: uc.tz,
		Unix:     t.Unix(),
	}
}
