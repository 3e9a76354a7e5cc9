package models

import (
	"strconv"
	"strings"
	"time"
)

type Appointment struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	DoctorID  string    `json:"doctorId"`
	PatientID string    `json:"patientId"`
	Duration  *int      `json:"duration,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
}

func (a *Appointment) Validate() error {
	switch {
	case a.Date.IsZero():
		return requiredField("date")
	case a.DoctorID == "":
		return requiredField("doctor")
	case a.PatientID == "":
		return requiredField("patient")
	}
	return nil
}

// AppointmentFilter narrows a listing to one doctor and/or one patient.
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
}

func (f AppointmentFilter) Match(a *Appointment) bool {
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	return true
}

// DateLayout is the wire format of appointment dates, the same shape as
// JavaScript's Date.toISOString.
const DateLayout = "2006-01-02T15:04:05.000Z"

var dateInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate reads an appointment date. Besides the layouts above it accepts a
// string of epoch milliseconds.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "date", Message: "Date is required"}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "date", Message: "Invalid date"}
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
