package tools

/*
Generates the entry-time slots and the (SL %, entry time) parameter sweep
*/

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Clock is a wall-clock entry time
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as zero-padded HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParameterTuple is one point of the sweep
type ParameterTuple struct {
	StopLossPercent int
	EntryHour       int
	EntryMinute     int
}

// EntryTime returns the tuple's entry time as a Clock
func (p ParameterTuple) EntryTime() Clock {
	return Clock{Hour: p.EntryHour, Minute: p.EntryMinute}
}

// GenerateTimeRange returns every minute from start to end inclusive.
// An end before the start spans midnight. Equal start and end give one slot.
func GenerateTimeRange(startHour, startMinute, endHour, endMinute int) []Clock {
	start := startHour*60 + startMinute
	end := endHour*60 + endMinute
	if end < start {
		end += minutesPerDay
	}

	times := make([]Clock, 0, end-start+1)
	for m := start; m <= end; m++ {
		wrapped := m % minutesPerDay
		times = append(times, Clock{Hour: wrapped / 60, Minute: wrapped % 60})
	}
	return times
}

// SweepTuples builds the Cartesian product of SL % and entry times.
// SL % is the outer axis, so rows come out grouped by stop-loss.
func SweepTuples(slFrom, slTo int, times []Clock) []ParameterTuple {
	if slTo < slFrom {
		return nil
	}
	tuples := make([]ParameterTuple, 0, (slTo-slFrom+1)*len(times))
	for sl := slFrom; sl <= slTo; sl++ {
		for _, t := range times {
			tuples = append(tuples, ParameterTuple{
				StopLossPercent: sl,
				EntryHour:       t.Hour,
				EntryMinute:     t.Minute,
			})
		}
	}
	return tuples
}

// ParseClock parses "H:MM" or "HH:MM"
func ParseClock(s string) (Clock, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 || len(minutePart) != 2 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ValidateStopLossRange checks a swept SL % range
func ValidateStopLossRange(from, to int) error {
	if from < 1 || to > 100 {
		return fmt.Errorf("stop-loss range %d..%d outside 1..100", from, to)
	}
	if to < from {
		return fmt.Errorf("stop-loss range %d..%d is empty", from, to)
	}
	return nil
}
