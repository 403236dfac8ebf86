package appointment

import (
	"fmt"
	"strconv"
	"strings"
)

// generateSlots enumerates every bookable time between startTime and endTime
// ("HH:MM", 24h) stepping by granularity minutes. The end boundary is
// inclusive: the last slot of an 09:00-11:00 window equals closing time, not
// closing time minus one step.
func generateSlots(startTime, endTime string, granularity int) ([]string, error) {
	if granularity <= 0 {
		return nil, ErrInvalidRange
	}

	sh, sm, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	eh, em, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	if sh > eh || (sh == eh && sm > em) {
		return nil, ErrInvalidRange
	}

	slots := make([]string, 0, 48)
	h, m := sh, sm
	for h < eh || (h == eh && m <= em) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		m += granularity
		for m >= 60 {
			m -= 60
			h++
		}
	}
	return slots, nil
}

// filterAvailable returns candidates minus booked, preserving candidate order.
func filterAvailable(candidates, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func parseClock(v string) (hour, minute int, err error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidRange
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidRange
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidRange
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidRange
	}
	return hour, minute, nil
}
