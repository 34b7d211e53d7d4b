package gateway

import (
	"net/http"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// methodRoles is the static authorization matrix for the protected resource
// prefix, keyed by HTTP method. A method absent from the map always denies.
var methodRoles = map[string][]domain.Role{
	http.MethodGet:    {domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist},
	http.MethodPost:   {domain.RoleAdmin, domain.RoleReceptionist},
	http.MethodPut:    {domain.RoleAdmin, domain.RoleDoctor},
	http.MethodDelete: {domain.RoleAdmin},
}

// Allowed reports whether role may perform method on a protected resource.
// The role is resolved first so legacy unspecified roles get the ADMIN
// fallback here too, independent of what the authority returned.
func Allowed(method string, role domain.Role) bool {
	for _, r := range methodRoles[method] {
		if r == role.Resolve() {
			return true
		}
	}
	return false
}
