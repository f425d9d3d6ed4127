// Package rbac gates teacher-only routes on the role carried by the session.
package rbac

import "context"

// RoleTeacher is the only role a session is issued for.
const RoleTeacher = "teacher"

type ctxKey struct{}

var ctxKeyRole = ctxKey{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeyRole); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsTeacher reports whether ctx carries a teacher session.
func IsTeacher(ctx context.Context) bool { return RoleFromContext(ctx) == RoleTeacher }
