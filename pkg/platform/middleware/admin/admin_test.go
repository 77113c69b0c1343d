package admin

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

// RoleGateSuite checks that a role outside the allowed set never reaches the handler.
type RoleGateSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestRoleGateSuite(t *testing.T) {
	suite.Run(t, new(RoleGateSuite))
}

func (s *RoleGateSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *RoleGateSuite) serve(role string) (int, bool) {
	called := false
	h := RequireRole(s.logger, "STAFF", "ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	ctx := requestcontext.WithPrincipal(context.Background(), id.AccountID(uuid.New()), "a@x.com", role)
	req := httptest.NewRequest(http.MethodPost, "/admin/registrations/1/approve", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code, called
}

func (s *RoleGateSuite) TestAllowedRoles() {
	for _, role := range []string{"STAFF", "ADMIN"} {
		code, called := s.serve(role)
		s.Equal(http.StatusOK, code, role)
		s.True(called, role)
	}
}

func (s *RoleGateSuite) TestRejectedRoles() {
	for _, role := range []string{"USER", "RESIDENT", "", "admin"} {
		code, called := s.serve(role)
		s.Equal(http.StatusForbidden, code, role)
		s.False(called, role)
	}
}
