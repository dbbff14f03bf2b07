package auth

import (
	"github.com/itmsdev/itms-client/core"
)

// Roles
const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleTrainer  = "TRAINER"
	RoleEmployee = "EMPLOYEE"
)

// Routes the guard layer redirects to.
const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteOTP          = "/otp"
	RouteUnauthorized = "/unauthorized"
	RouteAdmin        = "/admin"
	RouteHR           = "/hr"
	RouteTrainer      = "/trainer"
	RouteEmployee     = "/employee"
)

var (
	AllRoles = []string{RoleAdmin, RoleHR, RoleTrainer, RoleEmployee}

	rolePriorities = map[string]int{
		RoleAdmin:    40,
		RoleHR:       30,
		RoleTrainer:  20,
		RoleEmployee: 10,
	}

	roleHomes = map[string]string{
		RoleAdmin:    RouteAdmin,
		RoleHR:       RouteHR,
		RoleTrainer:  RouteTrainer,
		RoleEmployee: RouteEmployee,
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

// HomeRoute resolves the single landing route for a role-set using the fixed
// precedence ADMIN > HR > TRAINER > EMPLOYEE. Redirect-after-login and direct
// navigation must both go through here so they always agree.
func HomeRoute(roles []string) string {
	var best string
	var bestPrio int
	for _, role := range roles {
		if p := RolePriority(role); p > bestPrio {
			best, bestPrio = role, p
		}
	}
	if best == "" {
		return RouteHome
	}
	return roleHomes[best]
}

// Identity is the authenticated principal's view of itself.
// A user always carries a role-set, never a single role; single-role wire
// payloads are normalized into a one-element set at the facade boundary.
type Identity struct {
	ID         int         `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FullName   string      `json:"fullName"`
	Roles      []string    `json:"roles"`
	Department *Department `json:"department,omitempty"`
	Phone      string      `json:"phone,omitempty"`
}

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (id Identity) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if id.HasRole(r) {
			return true
		}
	}
	return false
}

func (id Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}

// Credentials is the transient input to login; it is not retained beyond
// the call that consumes it.
type Credentials struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return core.Validate.Struct(c)
}
