package gateway

import (
	"net/http"
	"testing"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		method string
		role   domain.Role
		want   bool
	}{
		{http.MethodGet, domain.RoleAdmin, true},
		{http.MethodGet, domain.RoleDoctor, true},
		{http.MethodGet, domain.RoleReceptionist, true},
		{http.MethodPost, domain.RoleAdmin, true},
		{http.MethodPost, domain.RoleReceptionist, true},
		{http.MethodPost, domain.RoleDoctor, false},
		{http.MethodPut, domain.RoleAdmin, true},
		{http.MethodPut, domain.RoleDoctor, true},
		{http.MethodPut, domain.RoleReceptionist, false},
		{http.MethodDelete, domain.RoleAdmin, true},
		{http.MethodDelete, domain.RoleDoctor, false},
		{http.MethodDelete, domain.RoleReceptionist, false},
		// Methods outside the matrix always deny, even for ADMIN.
		{http.MethodPatch, domain.RoleAdmin, false},
		{http.MethodOptions, domain.RoleAdmin, false},
		// Unspecified roles resolve to ADMIN before the lookup.
		{http.MethodDelete, domain.RoleUnspecified, true},
	}

	for _, tt := range tests {
		if got := Allowed(tt.method, tt.role); got != tt.want {
			t.Fatalf("Allowed(%s, %q) = %v, want %v", tt.method, tt.role, got, tt.want)
		}
	}
}
