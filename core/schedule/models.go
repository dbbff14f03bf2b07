package schedule

import (
	"time"

	"github.com/itmsdev/itms-client/core"
)

// Schedule statuses
const (
	StatusScheduled = "Scheduled"
	StatusLocked    = "Locked"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// TrainerSchedule is one calendar slot on a trainer's weekly grid.
// Day runs 2..8 (2=Mon .. 8=Sun) to match the calendar widget.
type TrainerSchedule struct {
	ID              string `json:"id"`
	TrainerUsername string `json:"trainerUsername"`
	CourseCode      string `json:"courseCode"`
	CourseName      string `json:"courseName"`
	Room            string `json:"room"`
	Day             int    `json:"day"`
	StartTime       string `json:"startTime"` // HH:mm
	EndTime         string `json:"endTime"`   // HH:mm
	Date            string `json:"date,omitempty"` // YYYY-MM-DD
	Status          string `json:"status,omitempty"`
	Color           string `json:"color,omitempty"`
}

// DayFromDate maps a YYYY-MM-DD date onto the 2..8 grid; invalid dates
// land on Monday.
func DayFromDate(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 2
	}
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd) + 1
	}
	return 8
}

type NewTrainerSchedule struct {
	TrainerUsername string `json:"trainerUsername" validate:"required"`
	CourseCode      string `json:"courseCode" validate:"required"`
	CourseName      string `json:"courseName"`
	Room            string `json:"room"`
	Day             int    `json:"day" validate:"omitempty,min=2,max=8"`
	StartTime       string `json:"startTime" validate:"required"`
	EndTime         string `json:"endTime" validate:"required"`
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status"`
	Color           string `json:"color"`
}

func (ns *NewTrainerSchedule) Validate() error {
	ns.TrainerUsername = core.CleanString(ns.TrainerUsername, true /* lower */)
	ns.CourseCode = core.CleanString(ns.CourseCode)
	return core.Validate.Struct(ns)
}

// Schedule returns the TrainerSchedule to be stored; the id is assigned
// by the backend. Day falls back to the date when not set explicitly.
func (ns NewTrainerSchedule) Schedule() TrainerSchedule {
	day := ns.Day
	if day == 0 {
		if ns.Date != "" {
			day = DayFromDate(ns.Date)
		} else {
			day = 2
		}
	}
	status := ns.Status
	if status == "" {
		status = StatusScheduled
	}
	return TrainerSchedule{
		TrainerUsername: ns.TrainerUsername,
		CourseCode:      ns.CourseCode,
		CourseName:      ns.CourseName,
		Room:            ns.Room,
		Day:             day,
		StartTime:       ns.StartTime,
		EndTime:         ns.EndTime,
		Date:            ns.Date,
		Status:          status,
		Color:           ns.Color,
	}
}

// UpdateTrainerSchedule patches an existing slot; empty fields keep the
// original value. Changing the date recomputes the day unless a day is
// given explicitly.
type UpdateTrainerSchedule struct {
	TrainerUsername string `json:"trainerUsername"`
	CourseCode      string `json:"courseCode"`
	CourseName      string `json:"courseName"`
	Room            string `json:"room"`
	Day             int    `json:"day" validate:"omitempty,min=2,max=8"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status"`
	Color           string `json:"color"`
}

func (us *UpdateTrainerSchedule) Validate() error {
	us.TrainerUsername = core.CleanString(us.TrainerUsername, true /* lower */)
	return core.Validate.Struct(us)
}

func (us UpdateTrainerSchedule) Apply(orig TrainerSchedule) TrainerSchedule {
	if us.TrainerUsername != "" {
		orig.TrainerUsername = us.TrainerUsername
	}
	if us.CourseCode != "" {
		orig.CourseCode = us.CourseCode
	}
	if us.CourseName != "" {
		orig.CourseName = us.CourseName
	}
	if us.Room != "" {
		orig.Room = us.Room
	}
	if us.StartTime != "" {
		orig.StartTime = us.StartTime
	}
	if us.EndTime != "" {
		orig.EndTime = us.EndTime
	}
	switch {
	case us.Day != 0:
		orig.Day = us.Day
		if us.Date != "" {
			orig.Date = us.Date
		}
	case us.Date != "":
		orig.Date = us.Date
		orig.Day = DayFromDate(us.Date)
	}
	if us.Status != "" {
		orig.Status = us.Status
	}
	if us.Color != "" {
		orig.Color = us.Color
	}
	return orig
}
