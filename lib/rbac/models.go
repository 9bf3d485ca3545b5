package rbac

import (
	"recruiting-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// route is a registered @router template split into segments; "{...}" segments match any value.
type route struct {
	segments []string
	handler  models.RbacFunc
}

func (r route) match(segments []string) bool {
	if len(r.segments) != len(segments) {
		return false
	}
	for idx, seg := range r.segments {
		if isParam(seg) {
			continue
		}
		if seg != segments[idx] {
			return false
		}
	}
	return true
}

// params counts the placeholder segments; fewer placeholders is the more specific route.
func (r route) params() int {
	n := 0
	for _, seg := range r.segments {
		if isParam(seg) {
			n++
		}
	}
	return n
}

type methodRoutes struct {
	exact    map[string]models.RbacFunc
	patterns []route
}
