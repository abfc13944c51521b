package dto

import (
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/pkg/helpers"
)

// SaveAttendanceRequest represents one day's attendance submission.
// Roster students absent from PresentStudentIDs are recorded as absent.
type SaveAttendanceRequest struct {
	Date              string  `json:"date" example:"2026-03-12"`
	PresentStudentIDs []int64 `json:"presentStudentIds"`
	AcademicHours     int     `json:"academicHours" example:"2"`
}

// DaySheetEntryResponse is one roster row on the daily sheet
type DaySheetEntryResponse struct {
	Student *StudentResponse `json:"student"`
	State   string           `json:"state" example:"PRESENT" enums:"PRESENT,ABSENT,NO_RECORD"`
}

// DaySheetResponse is the daily attendance sheet for the applied filter
type DaySheetResponse struct {
	Date    string                  `json:"date" example:"2026-03-12"`
	Filter  FilterInfo              `json:"filter"`
	Taken   bool                    `json:"taken"`
	Entries []DaySheetEntryResponse `json:"entries"`
}

// NewDaySheetResponse maps a day sheet to its response form
func NewDaySheetResponse(sheet *services.DaySheet) *DaySheetResponse {
	resp := &DaySheetResponse{
		Date:    sheet.Day.Format(helpers.DateLayout),
		Filter:  NewFilterInfo(sheet.Filter),
		Taken:   sheet.Taken,
		Entries: make([]DaySheetEntryResponse, 0, len(sheet.Entries)),
	}
	for _, e := range sheet.Entries {
		resp.Entries = append(resp.Entries, DaySheetEntryResponse{
			Student: NewStudentResponse(e.Student),
			State:   string(e.State),
		})
	}
	return resp
}
