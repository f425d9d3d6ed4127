package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

// TeacherVerifier checks a teacher code and returns the session subject.
type TeacherVerifier interface {
	Verify(ctx context.Context, code string) (string, error)
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// GET /quizze/lehrer/?lehrerkennzahl=... sets the session cookie on success.
func TeacherLoginHandler(teachers TeacherVerifier, authSvc *auth.AuthService, secureCookie bool, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := teachers.Verify(r.Context(), r.URL.Query().Get("lehrerkennzahl"))
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		s, err := authSvc.IssueSession(sub, rbac.RoleTeacher)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		http.SetCookie(w, authSvc.Cookie(s, secureCookie))
		logger.Info("teacher session issued", "sub", sub)
		ok(w, http.StatusOK, loginResponse{AccessToken: s.Token, ExpiresAt: s.ExpiresAt}, "")
	}
}
