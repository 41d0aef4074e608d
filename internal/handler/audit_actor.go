package handler

import (
	"net"
	"net/http"
	"strings"

	"hrms-portal/internal/middleware"
	"hrms-portal/internal/model"
)

// actorFromRequest names who is acting, for audit entries and events.
func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: clientIP(r)}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.UserID = claims.UserID
	actor.Username = claims.Username
	actor.Role = claims.Role

	return actor
}

func clientIP(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	xri := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}

	return strings.TrimSpace(r.RemoteAddr)
}

// employeeOf returns the employee the caller is linked to, if any.
func employeeOf(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.EmployeeID
}

func hasRole(r *http.Request, roles ...string) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return false
	}
	for _, role := range roles {
		if strings.EqualFold(claims.Role, role) {
			return true
		}
	}
	return false
}
