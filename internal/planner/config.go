package planner

import "time"

const defaultDepartureHour = 15

// Config tunes the orchestrator. Zero fields fall back to the defaults.
type Config struct {
	MaxTripDays              int
	LegSearchTimeout         time.Duration
	MaxConcurrentLegSearches int
	// DepartureHour is the UTC hour at which every leg departs. Nil or an
	// hour outside 0-23 means 15:00.
	DepartureHour *int
}

// DefaultConfig returns the stock planner settings
func DefaultConfig() Config {
	return Config{
		MaxTripDays:              60,
		LegSearchTimeout:         5 * time.Second,
		MaxConcurrentLegSearches: 4,
		DepartureHour:            Hour(defaultDepartureHour),
	}
}

// Hour returns a pointer for Config.DepartureHour
func Hour(h int) *int {
	return &h
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxTripDays <= 0 {
		c.MaxTripDays = d.MaxTripDays
	}
	if c.LegSearchTimeout <= 0 {
		c.LegSearchTimeout = d.LegSearchTimeout
	}
	if c.MaxConcurrentLegSearches <= 0 {
		c.MaxConcurrentLegSearches = d.MaxConcurrentLegSearches
	}
	if c.DepartureHour == nil || *c.DepartureHour < 0 || *c.DepartureHour > 23 {
		c.DepartureHour = d.DepartureHour
	} else {
		c.DepartureHour = Hour(*c.DepartureHour)
	}
	return c
}

func (c Config) departureHour() int {
	if c.DepartureHour == nil {
		return defaultDepartureHour
	}
	return *c.DepartureHour
}
