// Package mockapi is the in-process implementation of the api facade. It
// simulates the backend against key-value-backed tables so every feature
// module can run without a network, and reproduces every success/failure
// branch of the real implementation.
package mockapi

import (
	"context"
	"time"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
	"github.com/itmsdev/itms-client/core/schedule"
	"github.com/itmsdev/itms-client/storage/fixtures"
	"github.com/itmsdev/itms-client/storage/kv"
)

// Session keys; implementation details invisible to callers.
const (
	keyToken = "itms_mock_token"
	keyUser  = "itms_mock_user"

	// forgot-password tri-state
	keyResetEmail    = "itms_mock_reset_email"
	keyResetOTP      = "itms_mock_otp"
	keyResetVerified = "itms_mock_otp_verified"

	// pending login challenge for OTP-enabled accounts
	keyLoginOTP  = "itms_mock_login_otp"
	keyLoginUser = "itms_mock_login_user"
)

// mockOTP is the fixed code every simulated challenge expects.
const mockOTP = "123456"

type service struct {
	conf      *core.Config
	kvs       kv.Store
	users     *kv.Table[auth.User]
	courses   *kv.Table[course.Course]
	schedules *kv.Table[schedule.TrainerSchedule]
}

// New wires the mock facade over the given store.
func New(conf *core.Config, kvs kv.Store) *api.API {
	svc := &service{
		conf:      conf,
		kvs:       kvs,
		users:     fixtures.UserTable(kvs),
		courses:   fixtures.CourseTable(kvs),
		schedules: fixtures.ScheduleTable(kvs),
	}
	return &api.API{
		Auth:      &authAPI{svc},
		Courses:   &courseAPI{svc},
		Schedules: &scheduleAPI{svc},
	}
}

// delay injects the simulated network latency before the synchronous
// mutation, the way the real facade suspends on I/O.
func (svc *service) delay(ctx context.Context) error {
	if svc.conf.MockDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(svc.conf.MockDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func ok[T any](data T, message string) api.Envelope[T] {
	return api.Envelope[T]{Data: data, Message: message, Status: 200}
}
