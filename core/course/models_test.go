package course

import "testing"

func TestNewCourseDefaults(t *testing.T) {
	crs := NewCourse{Code: "GO-101", Name: "Go Basics"}.Course()

	if crs.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", crs.Status, StatusDraft)
	}
	if crs.Category != "Programming" {
		t.Errorf("Category = %q", crs.Category)
	}
	if crs.Level != "Beginner" {
		t.Errorf("Level = %q", crs.Level)
	}
	if crs.DurationHours != 8 || crs.PassingScore != 70 || crs.MaxAttempts != 3 {
		t.Errorf("numeric defaults = %d/%d/%d", crs.DurationHours, crs.PassingScore, crs.MaxAttempts)
	}
	if crs.ID != 0 {
		t.Errorf("ID = %d, want unassigned", crs.ID)
	}
}

func TestNewCourseValidate(t *testing.T) {
	tests := []struct {
		name    string
		nc      NewCourse
		wantErr bool
	}{
		{name: "ok", nc: NewCourse{Code: "GO-101", Name: "Go Basics"}},
		{name: "missing code", nc: NewCourse{Name: "Go Basics"}, wantErr: true},
		{name: "missing name", nc: NewCourse{Code: "GO-101"}, wantErr: true},
		{name: "bad passing score", nc: NewCourse{Code: "GO-101", Name: "Go", PassingScore: 150}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateCourseApply(t *testing.T) {
	orig := NewCourse{Code: "GO-101", Name: "Go Basics", Description: "Intro"}.Course()
	orig.ID = 7

	t.Run("empty patch keeps everything", func(t *testing.T) {
		if got := (UpdateCourse{}).Apply(orig); got != orig {
			t.Errorf("Apply() = %+v, want original", got)
		}
	})

	t.Run("empty string pointer clears, empty string keeps", func(t *testing.T) {
		empty := ""
		got := UpdateCourse{Description: &empty, Name: ""}.Apply(orig)
		if got.Description != "" {
			t.Errorf("Description = %q, want cleared", got.Description)
		}
		if got.Name != orig.Name {
			t.Errorf("Name = %q, want untouched", got.Name)
		}
	})

	t.Run("numeric pointer patches", func(t *testing.T) {
		hours := 40
		got := UpdateCourse{DurationHours: &hours, Status: StatusOpen}.Apply(orig)
		if got.DurationHours != 40 || got.Status != StatusOpen {
			t.Errorf("Apply() = %+v", got)
		}
		if got.ID != 7 {
			t.Errorf("ID changed to %d", got.ID)
		}
	})
}
