package entities

import "time"

// Device is the catalog snapshot of the device brought in for repair.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Year is the manufacture year; 0 means the catalog does not know it.
type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Year     int    `json:"year"`
}

// AgeKnown is false when the catalog has no manufacture year or a year after now.
func (d Device) AgeKnown(now time.Time) bool {
	return d.Year > 0 && d.Year <= now.Year()
}

// AgeYears derives the device age at now. Unknown or future years yield 0;
// check AgeKnown before treating 0 as a real age.
func (d Device) AgeYears(now time.Time) int {
	if d.Year <= 0 {
		return 0
	}
	age := now.Year() - d.Year
	if age < 0 {
		return 0
	}
	return age
}
