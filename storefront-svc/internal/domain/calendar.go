package domain

import "time"

const DateLayout = "2006-01-02"

// Calendar resolves "today" in the store's time zone. The Postgres session
// runs in the same zone, so Today agrees with CURRENT_DATE.
type Calendar struct {
	Location *time.Location
	Clock    func() time.Time
}

func NewCalendar(location *time.Location) Calendar {
	return Calendar{Location: location}
}

func (c Calendar) Today() string {
	now := time.Now
	if c.Clock != nil {
		now = c.Clock
	}
	location := c.Location
	if location == nil {
		location = time.UTC
	}
	return now().In(location).Format(DateLayout)
}

// ResolveDate validates a YYYY-MM-DD date; an empty date means today.
func (c Calendar) ResolveDate(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", NewValidationError("date", "must use YYYY-MM-DD")
	}
	return date, nil
}
