package schedule

import "testing"

func TestDayFromDate(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-08-31", 2}, // Monday
		{"2026-09-04", 6}, // Friday
		{"2026-09-05", 7}, // Saturday
		{"2026-09-06", 8}, // Sunday
		{"not-a-date", 2},
		{"", 2},
	}
	for _, tt := range tests {
		if got := DayFromDate(tt.date); got != tt.want {
			t.Errorf("DayFromDate(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestNewScheduleDefaults(t *testing.T) {
	ns := NewTrainerSchedule{
		TrainerUsername: "trainer001",
		CourseCode:      "GO-101",
		StartTime:       "09:00",
		EndTime:         "11:00",
	}
	sch := ns.Schedule()
	if sch.Day != 2 {
		t.Errorf("Day = %d, want 2 when neither day nor date is given", sch.Day)
	}
	if sch.Status != StatusScheduled {
		t.Errorf("Status = %q, want %q", sch.Status, StatusScheduled)
	}

	ns.Date = "2026-09-04"
	if got := ns.Schedule().Day; got != 6 {
		t.Errorf("Day = %d, want 6 derived from the date", got)
	}

	ns.Day = 3 // explicit day wins over the date
	if got := ns.Schedule().Day; got != 3 {
		t.Errorf("Day = %d, want 3", got)
	}
}

func TestUpdateApply(t *testing.T) {
	orig := TrainerSchedule{
		ID:              "sch-1",
		TrainerUsername: "trainer001",
		CourseCode:      "GO-101",
		Room:            "A1",
		Day:             2,
		StartTime:       "09:00",
		EndTime:         "11:00",
		Status:          StatusScheduled,
	}

	t.Run("empty patch keeps everything", func(t *testing.T) {
		if got := (UpdateTrainerSchedule{}).Apply(orig); got != orig {
			t.Errorf("Apply() = %+v, want original", got)
		}
	})

	t.Run("date change recomputes the day", func(t *testing.T) {
		got := UpdateTrainerSchedule{Date: "2026-09-04"}.Apply(orig)
		if got.Day != 6 {
			t.Errorf("Day = %d, want 6", got.Day)
		}
	})

	t.Run("explicit day overrides the date", func(t *testing.T) {
		got := UpdateTrainerSchedule{Day: 4, Date: "2026-09-04"}.Apply(orig)
		if got.Day != 4 {
			t.Errorf("Day = %d, want 4", got.Day)
		}
		if got.Date != "2026-09-04" {
			t.Errorf("Date = %q", got.Date)
		}
	})

	t.Run("status and room patch", func(t *testing.T) {
		got := UpdateTrainerSchedule{Room: "B2", Status: StatusLocked}.Apply(orig)
		if got.Room != "B2" || got.Status != StatusLocked {
			t.Errorf("Apply() = %+v", got)
		}
		if got.StartTime != orig.StartTime {
			t.Error("untouched fields changed")
		}
	})
}
