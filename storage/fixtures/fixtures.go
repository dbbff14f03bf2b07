// Package fixtures holds the seed data and table bindings for the simulated
// backend tables. A table is seeded on first-ever access only; wiping a
// table leaves it empty.
package fixtures

import (
	"log"

	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
	"github.com/itmsdev/itms-client/core/schedule"
	"github.com/itmsdev/itms-client/storage/kv"
)

// Storage keys, one per simulated table.
const (
	KeyUsers     = "itms_mock_users_v1"
	KeyCourses   = "itms_mock_courses_v1"
	KeySchedules = "itms_mock_trainer_schedules_v1"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "admin123"

func UserTable(s kv.Store) *kv.Table[auth.User] {
	return kv.NewTable(s, KeyUsers, SeedUsers)
}

func CourseTable(s kv.Store) *kv.Table[course.Course] {
	return kv.NewTable(s, KeyCourses, SeedCourses)
}

func ScheduleTable(s kv.Store) *kv.Table[schedule.TrainerSchedule] {
	return kv.NewTable(s, KeySchedules, SeedSchedules)
}

func SeedUsers() []auth.User {
	users := []auth.User{
		{
			Identity: auth.Identity{
				ID:         1,
				Username:   "admin",
				Email:      "admin@itms.com",
				FullName:   "System Administrator",
				Roles:      []string{auth.RoleAdmin},
				Department: &auth.Department{ID: 1, Name: "IT Department"},
				Phone:      "0905123456",
			},
			Active: true,
		},
		{
			Identity: auth.Identity{
				ID:         2,
				Username:   "hr001",
				Email:      "hr@itms.com",
				FullName:   "Nguyen Van HR",
				Roles:      []string{auth.RoleHR},
				Department: &auth.Department{ID: 2, Name: "HR Department"},
				Phone:      "0905123457",
			},
			OTPEnabled: true,
			Active:     true,
		},
		{
			Identity: auth.Identity{
				ID:         3,
				Username:   "trainer001",
				Email:      "trainer@itms.com",
				FullName:   "Tran Thi Trainer",
				Roles:      []string{auth.RoleTrainer, auth.RoleEmployee},
				Department: &auth.Department{ID: 1, Name: "IT Department"},
				Phone:      "0905123458",
			},
			Active: true,
		},
		{
			Identity: auth.Identity{
				ID:         4,
				Username:   "emp001",
				Email:      "employee@itms.com",
				FullName:   "Le Van Employee",
				Roles:      []string{auth.RoleEmployee},
				Department: &auth.Department{ID: 3, Name: "Finance Department"},
				Phone:      "0905123459",
			},
			Active: true,
		},
		{
			Identity: auth.Identity{
				ID:         5,
				Username:   "emp002",
				Email:      "employee2@itms.com",
				FullName:   "Pham Thi Mai",
				Roles:      []string{auth.RoleEmployee},
				Department: &auth.Department{ID: 4, Name: "Sales Department"},
				Phone:      "0905123460",
			},
			Active: true,
		},
	}
	for i := range users {
		if err := users[i].SetPassword(DefaultPassword); err != nil {
			log.Fatalf("fixtures: hashing seed password: %v", err)
		}
	}
	return users
}

func SeedCourses() []course.Course {
	return []course.Course{
		{
			ID:            1,
			Code:          "PYTHON-001",
			Name:          "Python Fundamentals",
			Description:   "Core Python for automation and data work.",
			Objectives:    "Write and debug idiomatic Python scripts.",
			Prerequisites: "None",
			DurationHours: 24,
			Category:      "Programming",
			Level:         "Beginner",
			PassingScore:  70,
			MaxAttempts:   3,
			Status:        course.StatusOpen,
			TrainerName:   "Tran Thi Trainer",
		},
		{
			ID:            2,
			Code:          "JAVA-002",
			Name:          "Advanced Java",
			Description:   "Collections, concurrency and JVM tuning.",
			Prerequisites: "Java basics",
			DurationHours: 40,
			Category:      "Programming",
			Level:         "Advanced",
			PassingScore:  75,
			MaxAttempts:   3,
			Status:        course.StatusOngoing,
			TrainerName:   "Tran Thi Trainer",
		},
		{
			ID:            3,
			Code:          "COMM-101",
			Name:          "Workplace Communication",
			Description:   "Presentations, meetings and written reports.",
			DurationHours: 8,
			Category:      "Soft Skills",
			Level:         "Beginner",
			PassingScore:  60,
			MaxAttempts:   2,
			Status:        course.StatusOpen,
			TrainerName:   "Nguyen Van HR",
		},
	}
}

func SeedSchedules() []schedule.TrainerSchedule {
	return []schedule.TrainerSchedule{
		{
			ID:              "seed-1",
			TrainerUsername: "trainer001",
			CourseCode:      "PYTHON-001",
			CourseName:      "Python Fundamentals",
			Room:            "Room A1",
			Day:             2,
			StartTime:       "08:00",
			EndTime:         "10:00",
			Status:          schedule.StatusScheduled,
			Color:           "#60D5F2",
		},
		{
			ID:              "seed-2",
			TrainerUsername: "trainer001",
			CourseCode:      "JAVA-002",
			CourseName:      "Advanced Java",
			Room:            "Room B2",
			Day:             3,
			StartTime:       "13:00",
			EndTime:         "15:00",
			Status:          schedule.StatusScheduled,
			Color:           "#7FE5B8",
		},
	}
}
