// Package api defines the one stable call surface per resource that every
// feature module talks to, regardless of whether a mock or a real network
// backend is behind it. Implementations live in api/mockapi and api/httpapi;
// selection happens once at startup (see itmsclient.New), call sites never
// branch.
package api

import (
	"context"

	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
	"github.com/itmsdev/itms-client/core/schedule"
)

// Envelope is the normalized shape every call result comes back in,
// independent of the backing implementation.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// LoginResult is the normalized login payload. When OTPRequired is set the
// caller must complete the OTP challenge before an identity exists.
type LoginResult struct {
	OTPRequired bool     `json:"otpRequired"`
	Token       string   `json:"token,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

type (
	Auth interface {
		Login(ctx context.Context, creds auth.Credentials) (Envelope[LoginResult], error)
		VerifyOTP(ctx context.Context, otp string) (Envelope[any], error)
		ResendOTP(ctx context.Context) (Envelope[any], error)
		Me(ctx context.Context) (Envelope[auth.Identity], error)
		Logout(ctx context.Context) (Envelope[any], error)
		ForgotPassword(ctx context.Context, email string) (Envelope[any], error)
		ResetPassword(ctx context.Context, token, newPassword string) (Envelope[any], error)
	}

	Courses interface {
		List(ctx context.Context) (Envelope[[]course.Course], error)
		Add(ctx context.Context, nc course.NewCourse) (Envelope[course.Course], error)
		Update(ctx context.Context, id int, uc course.UpdateCourse) (Envelope[course.Course], error)
		Delete(ctx context.Context, id int) (Envelope[any], error)
	}

	Schedules interface {
		List(ctx context.Context) (Envelope[[]schedule.TrainerSchedule], error)
		Add(ctx context.Context, ns schedule.NewTrainerSchedule) (Envelope[schedule.TrainerSchedule], error)
		Update(ctx context.Context, id string, us schedule.UpdateTrainerSchedule) (Envelope[schedule.TrainerSchedule], error)
		Delete(ctx context.Context, id string) (Envelope[any], error)
	}
)

// API bundles the per-resource facades behind one handle.
type API struct {
	Auth      Auth
	Courses   Courses
	Schedules Schedules
}
