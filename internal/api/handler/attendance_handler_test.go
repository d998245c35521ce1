package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/service"
)

// stubAttendanceService returns a fixed error from every operation.
type stubAttendanceService struct {
	err error
}

func (s *stubAttendanceService) Take(context.Context, string, *dto.TakeAttendanceRequest, string) (*dto.SessionAttendanceResponse, error) {
	return nil, s.err
}

func (s *stubAttendanceService) Update(context.Context, string, *dto.UpdateAttendanceRequest, string) (*dto.SessionAttendanceResponse, error) {
	return nil, s.err
}

func (s *stubAttendanceService) SessionAttendance(context.Context, string) (*dto.SessionAttendanceResponse, error) {
	return nil, s.err
}

func (s *stubAttendanceService) UserHistory(context.Context, string, string) (*dto.UserAttendanceHistory, error) {
	return nil, s.err
}

func (s *stubAttendanceService) WorkshopReport(context.Context, string) (*dto.WorkshopReport, error) {
	return nil, s.err
}

func (s *stubAttendanceService) ProfessionalSummary(context.Context, string) (*dto.ProfessionalSummary, error) {
	return nil, s.err
}

func takeAttendanceWith(t *testing.T, svcErr error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAttendanceHandler(&stubAttendanceService{err: svcErr})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"attendances":[{"user_id":"2febe186-6cb3-48a1-acd4-b4b55f0ec350","present":true}]}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/session/sess-1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}
	c.Set("user_id", "prof-1")

	h.TakeAttendance(c)
	return w
}

func TestTakeAttendance_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"already taken", service.ErrAttendanceAlreadyTaken, http.StatusBadRequest},
		{"cancelled session", service.ErrAttendanceOnCancelled, http.StatusBadRequest},
		{"not enrolled", service.ErrUserNotEnrolled, http.StatusBadRequest},
		{"session missing", service.ErrSessionNotFound, http.StatusNotFound},
		{"user missing", service.ErrAttendanceUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := takeAttendanceWith(t, tc.err)
			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if body["error"] != tc.err.Error() {
				t.Errorf("expected error %q, got %q", tc.err.Error(), body["error"])
			}
		})
	}
}
