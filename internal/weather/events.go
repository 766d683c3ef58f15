package weather

import (
	"errors"
	"time"

	"github.com/i474232898/horizon/internal/timeindex"
)

// ErrNoUpcomingEvent is returned when the forecast ends before the next
// sunrise or sunset.
var ErrNoUpcomingEvent = errors.New("no upcoming sun event in forecast")

// NextEvent picks the sun event to forecast for at now. Today's sunrise or
// sunset stays selected until margin after it has passed; once both are
// over, tomorrow's sunrise is chosen.
func NextEvent(d Daily, now time.Time, margin time.Duration) (Event, error) {
	if err := d.Validate(); err != nil {
		return Event{}, err
	}

	ts := now.Unix()
	today := timeindex.Floor(d.Time, ts)
	if today < 0 {
		today = 0
	}

	grace := int64(margin / time.Second)
	for _, ev := range eventsOn(d, today) {
		if ev.Time+grace >= ts {
			return ev, nil
		}
	}

	if today+1 < len(d.Time) {
		return eventsOn(d, today+1)[0], nil
	}
	return Event{}, ErrNoUpcomingEvent
}

// UpcomingEvents lists the sunrises and sunsets after current, up to days
// days past current's day, in chronological order.
func UpcomingEvents(d Daily, current Event, days int) []Event {
	var out []Event
	for i := current.Day; i <= current.Day+days && i < len(d.Time); i++ {
		for _, ev := range eventsOn(d, i) {
			if ev.Time > current.Time {
				out = append(out, ev)
			}
		}
	}
	return out
}

func eventsOn(d Daily, day int) []Event {
	return []Event{
		{Kind: Sunrise, Time: d.Sunrise[day], Day: day, Date: d.Time[day]},
		{Kind: Sunset, Time: d.Sunset[day], Day: day, Date: d.Time[day]},
	}
}
