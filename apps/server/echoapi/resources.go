package echoapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
	"github.com/itmsdev/itms-client/core/schedule"
	"github.com/itmsdev/itms-client/storage/fixtures"
	"github.com/itmsdev/itms-client/storage/kv"
)

func registerResourceAPI(app *echo.Echo, conf *core.Config, store kv.Store) {
	g := app.Group("/api", authMiddleware(conf))

	crs := courseAPI{courses: fixtures.CourseTable(store)}
	courseAdmin := roleMiddleware(auth.RoleAdmin, auth.RoleHR)
	g.GET("/courses", crs.list)
	g.POST("/courses", crs.create, courseAdmin)
	g.PUT("/courses/:id", crs.update, courseAdmin)
	g.DELETE("/courses/:id", crs.delete, courseAdmin)

	sch := scheduleAPI{schedules: fixtures.ScheduleTable(store)}
	scheduleAdmin := roleMiddleware(auth.RoleAdmin, auth.RoleHR, auth.RoleTrainer)
	g.GET("/schedules", sch.list)
	g.POST("/schedules", sch.create, scheduleAdmin)
	g.PUT("/schedules/:id", sch.update, scheduleAdmin)
	g.DELETE("/schedules/:id", sch.delete, scheduleAdmin)
}

type courseAPI struct {
	courses *kv.Table[course.Course]
}

func (api courseAPI) list(ctx echo.Context) error {
	courses, err := api.courses.All()
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, courses, "ok")
}

func (api courseAPI) create(ctx echo.Context) error {
	var nc course.NewCourse
	if err := ctx.Bind(&nc); err != nil {
		return err
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	courses, err := api.courses.All()
	if err != nil {
		return err
	}
	crs := nc.Course()
	for _, c := range courses {
		if c.ID >= crs.ID {
			crs.ID = c.ID + 1
		}
	}
	if crs.ID == 0 {
		crs.ID = 1
	}
	courses = append(courses, crs)
	if err = api.courses.Save(courses); err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, crs, "course created")
}

func (api courseAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	var uc course.UpdateCourse
	if err = ctx.Bind(&uc); err != nil {
		return err
	}
	if err = uc.Validate(); err != nil {
		return err
	}

	courses, err := api.courses.All()
	if err != nil {
		return err
	}
	for i := range courses {
		if courses[i].ID != id {
			continue
		}
		courses[i] = uc.Apply(courses[i])
		if err = api.courses.Save(courses); err != nil {
			return err
		}
		return respond(ctx, http.StatusOK, courses[i], "course updated")
	}
	return echo.NewHTTPError(http.StatusNotFound, "course not found")
}

func (api courseAPI) delete(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	courses, err := api.courses.All()
	if err != nil {
		return err
	}
	kept := courses[:0]
	for _, c := range courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(courses) {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err = api.courses.Save(kept); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, nil, "course deleted")
}

type scheduleAPI struct {
	schedules *kv.Table[schedule.TrainerSchedule]
}

func (api scheduleAPI) list(ctx echo.Context) error {
	schedules, err := api.schedules.All()
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, schedules, "ok")
}

func (api scheduleAPI) create(ctx echo.Context) error {
	var ns schedule.NewTrainerSchedule
	if err := ctx.Bind(&ns); err != nil {
		return err
	}
	if err := ns.Validate(); err != nil {
		return err
	}

	schedules, err := api.schedules.All()
	if err != nil {
		return err
	}
	sch := ns.Schedule()
	sch.ID = "sch-" + uuid.NewString()
	schedules = append([]schedule.TrainerSchedule{sch}, schedules...)
	if err = api.schedules.Save(schedules); err != nil {
		return err
	}
	return respond(ctx, http.StatusCreated, sch, "schedule created")
}

func (api scheduleAPI) update(ctx echo.Context) error {
	id := ctx.Param("id")
	var us schedule.UpdateTrainerSchedule
	if err := ctx.Bind(&us); err != nil {
		return err
	}
	if err := us.Validate(); err != nil {
		return err
	}

	schedules, err := api.schedules.All()
	if err != nil {
		return err
	}
	for i := range schedules {
		if schedules[i].ID != id {
			continue
		}
		schedules[i] = us.Apply(schedules[i])
		if err = api.schedules.Save(schedules); err != nil {
			return err
		}
		return respond(ctx, http.StatusOK, schedules[i], "schedule updated")
	}
	return echo.NewHTTPError(http.StatusNotFound, "schedule not found")
}

func (api scheduleAPI) delete(ctx echo.Context) error {
	id := ctx.Param("id")

	schedules, err := api.schedules.All()
	if err != nil {
		return err
	}
	kept := schedules[:0]
	for _, s := range schedules {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(schedules) {
		return echo.NewHTTPError(http.StatusNotFound, "schedule not found")
	}
	if err = api.schedules.Save(kept); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, nil, "schedule deleted")
}
