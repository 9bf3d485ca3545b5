package rbac

import (
	"recruiting-backend/models"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		routes:      map[HTTPMethod]*methodRoutes{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	Instance = i
}

type impl struct {
	routes      map[HTTPMethod]*methodRoutes
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	table, ok := i.routes[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	path = normalizePath(path)
	if handler, ok := table.exact[path]; ok {
		return handler, true
	}
	segments := splitPath(path)
	for _, r := range table.patterns {
		if r.match(segments) {
			return r.handler, true
		}
	}
	return nil, false
}

// RegisterRule binds a swagger @router value such as "/api/v1/applications/{id} [get]" to the roles allowed on it.
// A nil handler allows exactly the listed roles.
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	i.addPermission(module, permission, roles)

	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	table, ok := i.routes[method]
	if !ok {
		table = &methodRoutes{exact: map[string]models.RbacFunc{}}
		i.routes[method] = table
	}
	segments := splitPath(path)
	if !slices.ContainsFunc(segments, isParam) {
		table.exact[path] = handler
		return nil
	}
	table.patterns = append(table.patterns, route{segments: segments, handler: handler})
	sort.SliceStable(table.patterns, func(a, b int) bool {
		return table.patterns[a].params() < table.patterns[b].params()
	})
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	result := map[models.Module][]models.Permission{}
	for module, permissions := range i.permissions[role] {
		result[module] = slices.Clone(permissions)
	}
	return result
}

func (i *impl) addPermission(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if !slices.Contains(modules[module], permission) {
			modules[module] = append(modules[module], permission)
		}
	}
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}

func AllowFunc() models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowed := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowed[role] = true
	}
	return func(userID string, role models.UserRole, uri string) bool {
		return allowed[role]
	}
}

func parseSwaggerPattern(pattern string) (string, HTTPMethod, error) {
	pattern = strings.TrimSpace(pattern)
	open := strings.LastIndex(pattern, "[")
	end := strings.LastIndex(pattern, "]")
	if open == -1 || end < open {
		return "", "", errors.Errorf("method not provided for pattern (%v)", pattern)
	}
	method := HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[open+1 : end])))
	if method == "" {
		return "", "", errors.Errorf("empty method in pattern (%v)", pattern)
	}
	return normalizePath(strings.TrimSpace(pattern[:open])), method, nil
}

func normalizePath(path string) string {
	return "/" + strings.Join(splitPath(path), "/")
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
