package httpapi

import (
	"context"
	"net/http"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/schedule"
)

type scheduleAPI struct {
	c *Client
}

var _ api.Schedules = (*scheduleAPI)(nil)

func (sa *scheduleAPI) List(ctx context.Context) (api.Envelope[[]schedule.TrainerSchedule], error) {
	var zero api.Envelope[[]schedule.TrainerSchedule]
	all := make([]schedule.TrainerSchedule, 0)
	status, msg, err := sa.c.do(ctx, http.MethodGet, "/api/schedules", nil, &all)
	if err != nil {
		return zero, err
	}
	return api.Envelope[[]schedule.TrainerSchedule]{Data: all, Message: msg, Status: status}, nil
}

func (sa *scheduleAPI) Add(ctx context.Context, ns schedule.NewTrainerSchedule) (api.Envelope[schedule.TrainerSchedule], error) {
	var zero api.Envelope[schedule.TrainerSchedule]
	var sch schedule.TrainerSchedule
	status, msg, err := sa.c.do(ctx, http.MethodPost, "/api/schedules", ns, &sch)
	if err != nil {
		return zero, err
	}
	return api.Envelope[schedule.TrainerSchedule]{Data: sch, Message: msg, Status: status}, nil
}

func (sa *scheduleAPI) Update(ctx context.Context, id string, us schedule.UpdateTrainerSchedule) (api.Envelope[schedule.TrainerSchedule], error) {
	var zero api.Envelope[schedule.TrainerSchedule]
	var sch schedule.TrainerSchedule
	status, msg, err := sa.c.do(ctx, http.MethodPut, "/api/schedules/"+id, us, &sch)
	if err != nil {
		return zero, err
	}
	return api.Envelope[schedule.TrainerSchedule]{Data: sch, Message: msg, Status: status}, nil
}

func (sa *scheduleAPI) Delete(ctx context.Context, id string) (api.Envelope[any], error) {
	status, msg, err := sa.c.do(ctx, http.MethodDelete, "/api/schedules/"+id, nil, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}
