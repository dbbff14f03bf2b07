package mockapi

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/schedule"
)

type scheduleAPI struct {
	*service
}

var _ api.Schedules = (*scheduleAPI)(nil)

func (s *scheduleAPI) List(ctx context.Context) (api.Envelope[[]schedule.TrainerSchedule], error) {
	var zero api.Envelope[[]schedule.TrainerSchedule]
	if err := s.delay(ctx); err != nil {
		return zero, err
	}
	all, err := s.schedules.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading schedules")
	}
	return ok(all, "schedules loaded"), nil
}

func (s *scheduleAPI) Add(ctx context.Context, ns schedule.NewTrainerSchedule) (api.Envelope[schedule.TrainerSchedule], error) {
	var zero api.Envelope[schedule.TrainerSchedule]
	if err := s.delay(ctx); err != nil {
		return zero, err
	}

	all, err := s.schedules.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading schedules")
	}

	sch := ns.Schedule()
	sch.ID = "sch-" + uuid.NewString()

	// newest first, the way the calendar lists them
	if err = s.schedules.Save(append([]schedule.TrainerSchedule{sch}, all...)); err != nil {
		return zero, err
	}
	return ok(sch, "schedule created"), nil
}

func (s *scheduleAPI) Update(ctx context.Context, id string, us schedule.UpdateTrainerSchedule) (api.Envelope[schedule.TrainerSchedule], error) {
	var zero api.Envelope[schedule.TrainerSchedule]
	if err := s.delay(ctx); err != nil {
		return zero, err
	}

	all, err := s.schedules.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading schedules")
	}
	for i := range all {
		if all[i].ID == id {
			all[i] = us.Apply(all[i])
			if err = s.schedules.Save(all); err != nil {
				return zero, err
			}
			return ok(all[i], "schedule updated"), nil
		}
	}
	return zero, api.NotFound("schedule not found")
}

func (s *scheduleAPI) Delete(ctx context.Context, id string) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := s.delay(ctx); err != nil {
		return zero, err
	}

	all, err := s.schedules.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading schedules")
	}
	kept := all[:0]
	var found bool
	for _, sch := range all {
		if sch.ID == id {
			found = true
			continue
		}
		kept = append(kept, sch)
	}
	if !found {
		return zero, api.NotFound("schedule not found")
	}
	if err = s.schedules.Save(kept); err != nil {
		return zero, err
	}
	return ok[any](nil, "schedule deleted"), nil
}
