package course

import (
	"github.com/itmsdev/itms-client/core"
)

// Course statuses
const (
	StatusDraft    = "Draft"
	StatusOpen     = "Open"
	StatusOngoing  = "Ongoing"
	StatusComplete = "Completed"
	StatusArchived = "Archived"
)

type Course struct {
	ID            int    `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Objectives    string `json:"objectives,omitempty"`
	Prerequisites string `json:"prerequisites,omitempty"`
	DurationHours int    `json:"durationHours"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	PassingScore  int    `json:"passingScore"`
	MaxAttempts   int    `json:"maxAttempts"`
	Status        string `json:"status"`
	TrainerName   string `json:"trainerName"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code          string `json:"code" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Objectives    string `json:"objectives"`
	Prerequisites string `json:"prerequisites"`
	DurationHours int    `json:"durationHours" validate:"omitempty,min=1"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	PassingScore  int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
	MaxAttempts   int    `json:"maxAttempts" validate:"omitempty,min=1"`
	TrainerName   string `json:"trainerName"`
}

func (nc *NewCourse) Validate() error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// Course applies defaults and returns the Course to be stored; the id is
// assigned by whichever backend persists it.
func (nc NewCourse) Course() Course {
	c := Course{
		Code:          nc.Code,
		Name:          nc.Name,
		Description:   nc.Description,
		Objectives:    nc.Objectives,
		Prerequisites: nc.Prerequisites,
		DurationHours: nc.DurationHours,
		Category:      nc.Category,
		Level:         nc.Level,
		ThumbnailURL:  nc.ThumbnailURL,
		PassingScore:  nc.PassingScore,
		MaxAttempts:   nc.MaxAttempts,
		Status:        StatusDraft,
		TrainerName:   nc.TrainerName,
	}
	if c.Category == "" {
		c.Category = "Programming"
	}
	if c.Level == "" {
		c.Level = "Beginner"
	}
	if c.DurationHours == 0 {
		c.DurationHours = 8
	}
	if c.PassingScore == 0 {
		c.PassingScore = 70
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	return c
}

// UpdateCourse defines what may be provided to modify an existing Course.
// Empty strings and nil numbers leave the original value untouched.
type UpdateCourse struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Objectives    *string `json:"objectives"`
	Prerequisites *string `json:"prerequisites"`
	DurationHours *int    `json:"durationHours" validate:"omitempty,min=1"`
	Category      string  `json:"category"`
	Level         string  `json:"level"`
	ThumbnailURL  *string `json:"thumbnailUrl"`
	PassingScore  *int    `json:"passingScore" validate:"omitempty,min=0,max=100"`
	MaxAttempts   *int    `json:"maxAttempts" validate:"omitempty,min=1"`
	Status        string  `json:"status"`
	TrainerName   string  `json:"trainerName"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Code = core.CleanString(uc.Code)
	uc.Name = core.CleanString(uc.Name)
	return core.Validate.Struct(uc)
}

// Apply patches orig with the provided fields only.
func (uc UpdateCourse) Apply(orig Course) Course {
	if uc.Code != "" {
		orig.Code = uc.Code
	}
	if uc.Name != "" {
		orig.Name = uc.Name
	}
	if uc.Description != nil {
		orig.Description = *uc.Description
	}
	if uc.Objectives != nil {
		orig.Objectives = *uc.Objectives
	}
	if uc.Prerequisites != nil {
		orig.Prerequisites = *uc.Prerequisites
	}
	if uc.DurationHours != nil {
		orig.DurationHours = *uc.DurationHours
	}
	if uc.Category != "" {
		orig.Category = uc.Category
	}
	if uc.Level != "" {
		orig.Level = uc.Level
	}
	if uc.ThumbnailURL != nil {
		orig.ThumbnailURL = *uc.ThumbnailURL
	}
	if uc.PassingScore != nil {
		orig.PassingScore = *uc.PassingScore
	}
	if uc.MaxAttempts != nil {
		orig.MaxAttempts = *uc.MaxAttempts
	}
	if uc.Status != "" {
		orig.Status = uc.Status
	}
	if uc.TrainerName != "" {
		orig.TrainerName = uc.TrainerName
	}
	return orig
}
