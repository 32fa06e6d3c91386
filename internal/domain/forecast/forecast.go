// Package forecast implements the inventory forecasting and replenishment
// engine: consumption velocity estimation from movement history, day-by-day
// stock projection with lot-level expiration, and prioritized replenishment
// and expiration alerts.
//
// Every function in this package is a pure computation over point-in-time
// snapshots of raw materials, lots and movements. The package performs no I/O
// and retains no state between calls, so all operations are safe for
// concurrent use.
package forecast

// Default parameters for the top-level operations. Callers override these
// per request; they are never mutated at runtime.
const (
	// DefaultLookbackDays is the trailing window for consumption estimation
	DefaultLookbackDays = 30
	// DefaultProjectionDays is the horizon for fleet-wide projections
	DefaultProjectionDays = 30
	// DefaultWarningThresholdDays is the replenishment inclusion cutoff
	DefaultWarningThresholdDays = 7
	// DefaultAlertWindowDays is the expiration alert inclusion cutoff
	DefaultAlertWindowDays = 30
)

// Priority classifies the urgency of a replenishment need or expiration alert
type Priority string

const (
	// PriorityHigh marks items that are already critical or expire within a week
	PriorityHigh Priority = "Alta"
	// PriorityMedium marks items approaching their threshold
	PriorityMedium Priority = "Media"
	// PriorityLow marks items that can wait
	PriorityLow Priority = "Baja"
)
