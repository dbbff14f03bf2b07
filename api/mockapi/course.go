package mockapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/course"
)

type courseAPI struct {
	*service
}

var _ api.Courses = (*courseAPI)(nil)

func (c *courseAPI) List(ctx context.Context) (api.Envelope[[]course.Course], error) {
	var zero api.Envelope[[]course.Course]
	if err := c.delay(ctx); err != nil {
		return zero, err
	}
	courses, err := c.courses.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading courses")
	}
	return ok(courses, "courses loaded"), nil
}

func (c *courseAPI) Add(ctx context.Context, nc course.NewCourse) (api.Envelope[course.Course], error) {
	var zero api.Envelope[course.Course]
	if err := c.delay(ctx); err != nil {
		return zero, err
	}

	courses, err := c.courses.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading courses")
	}

	crs := nc.Course()
	for _, existing := range courses {
		if existing.ID >= crs.ID {
			crs.ID = existing.ID + 1
		}
	}
	if crs.ID == 0 {
		crs.ID = 1
	}

	if err = c.courses.Save(append(courses, crs)); err != nil {
		return zero, err
	}
	return ok(crs, "course created"), nil
}

func (c *courseAPI) Update(ctx context.Context, id int, uc course.UpdateCourse) (api.Envelope[course.Course], error) {
	var zero api.Envelope[course.Course]
	if err := c.delay(ctx); err != nil {
		return zero, err
	}

	courses, err := c.courses.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading courses")
	}
	for i := range courses {
		if courses[i].ID == id {
			courses[i] = uc.Apply(courses[i])
			if err = c.courses.Save(courses); err != nil {
				return zero, err
			}
			return ok(courses[i], "course updated"), nil
		}
	}
	return zero, api.NotFound("course not found")
}

func (c *courseAPI) Delete(ctx context.Context, id int) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := c.delay(ctx); err != nil {
		return zero, err
	}

	courses, err := c.courses.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading courses")
	}
	kept := courses[:0]
	var found bool
	for _, crs := range courses {
		if crs.ID == id {
			found = true
			continue
		}
		kept = append(kept, crs)
	}
	if !found {
		return zero, api.NotFound("course not found")
	}
	if err = c.courses.Save(kept); err != nil {
		return zero, err
	}
	return ok[any](nil, "course deleted"), nil
}
