package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/course"
)

type courseAPI struct {
	c *Client
}

var _ api.Courses = (*courseAPI)(nil)

func (ca *courseAPI) List(ctx context.Context) (api.Envelope[[]course.Course], error) {
	var zero api.Envelope[[]course.Course]
	courses := make([]course.Course, 0)
	status, msg, err := ca.c.do(ctx, http.MethodGet, "/api/courses", nil, &courses)
	if err != nil {
		return zero, err
	}
	return api.Envelope[[]course.Course]{Data: courses, Message: msg, Status: status}, nil
}

func (ca *courseAPI) Add(ctx context.Context, nc course.NewCourse) (api.Envelope[course.Course], error) {
	var zero api.Envelope[course.Course]
	var crs course.Course
	status, msg, err := ca.c.do(ctx, http.MethodPost, "/api/courses", nc, &crs)
	if err != nil {
		return zero, err
	}
	return api.Envelope[course.Course]{Data: crs, Message: msg, Status: status}, nil
}

func (ca *courseAPI) Update(ctx context.Context, id int, uc course.UpdateCourse) (api.Envelope[course.Course], error) {
	var zero api.Envelope[course.Course]
	var crs course.Course
	status, msg, err := ca.c.do(ctx, http.MethodPut, "/api/courses/"+strconv.Itoa(id), uc, &crs)
	if err != nil {
		return zero, err
	}
	return api.Envelope[course.Course]{Data: crs, Message: msg, Status: status}, nil
}

func (ca *courseAPI) Delete(ctx context.Context, id int) (api.Envelope[any], error) {
	status, msg, err := ca.c.do(ctx, http.MethodDelete, "/api/courses/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}
