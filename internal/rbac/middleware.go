package rbac

import (
	"encoding/json"
	"net/http"
)

// RequireTeacher lets only requests with a teacher session through. Requests
// without a role get 401, any other role gets 403.
func RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case RoleFromContext(r.Context()) == "":
			deny(w, http.StatusUnauthorized, "teacher session required")
		case !IsTeacher(r.Context()):
			deny(w, http.StatusForbidden, "forbidden")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func deny(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "detail": detail})
}
