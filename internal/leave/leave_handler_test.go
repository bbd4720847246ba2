package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn     func(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	approveFn    func(ctx context.Context, managerID, id, comment string) (leave.LeaveResponse, error)
	rejectFn     func(ctx context.Context, managerID, id, comment string) (leave.LeaveResponse, error)
	cancelFn     func(ctx context.Context, employeeID, id string) error
	getMineFn    func(ctx context.Context, employeeID, statusFilter string) ([]leave.LeaveResponse, error)
	getAllFn     func(ctx context.Context, statusFilter string) ([]leave.LeaveResponse, error)
	getPendingFn func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByIDFn    func(ctx context.Context, id string) (leave.LeaveResponse, error)
	getBalanceFn func(ctx context.Context, employeeID string) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, managerID, id, comment string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, managerID, id, comment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, managerID, id, comment string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, managerID, id, comment)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, employeeID, id string) error {
	return f.cancelFn(ctx, employeeID, id)
}
func (f *fakeLeaveService) GetMine(ctx context.Context, employeeID, statusFilter string) ([]leave.LeaveResponse, error) {
	return f.getMineFn(ctx, employeeID, statusFilter)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, statusFilter string) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, statusFilter)
}
func (f *fakeLeaveService) GetPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	return f.getBalanceFn(ctx, employeeID)
}

func newTestRouter(svc leave.Service, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := leave.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Next()
	})

	r.POST("/leaves", handler.Submit)
	r.GET("/leaves/my-requests", handler.GetMine)
	r.GET("/leaves/balance", handler.GetBalance)
	r.DELETE("/leaves/:id", handler.Cancel)
	r.GET("/leaves/pending", handler.GetPending)
	r.PUT("/leaves/:id/approve", handler.Approve)
	r.PUT("/leaves/:id/reject", handler.Reject)

	return r
}

func TestLeaveHandler_Submit(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "sickLeave", req.Category)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: eid,
					Category:   req.Category,
					TotalDays:  3,
					Status:     "pending",
				}, nil
			},
		}
		router := newTestRouter(svc, employeeID)

		body := `{"leave_type":"sickLeave","start_date":"2026-03-02","end_date":"2026-03-04","reason":"Flu"}`
		req, _ := http.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached on validation failure")
				return leave.LeaveResponse{}, nil
			},
		}
		router := newTestRouter(svc, employeeID)

		body := `{"leave_type":"sickLeave","start_date":"2026-03-02","end_date":"2026-03-04"}`
		req, _ := http.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative unknown leave type rejected by binding", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached on validation failure")
				return leave.LeaveResponse{}, nil
			},
		}
		router := newTestRouter(svc, employeeID)

		body := `{"leave_type":"sabbatical","start_date":"2026-03-02","end_date":"2026-03-04","reason":"Recharge"}`
		req, _ := http.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative insufficient balance maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}
		router := newTestRouter(svc, employeeID)

		body := `{"leave_type":"sickLeave","start_date":"2026-03-02","end_date":"2026-03-20","reason":"Flu"}`
		req, _ := http.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	managerID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("success with empty body", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, mid, id, comment string) (leave.LeaveResponse, error) {
				assert.Equal(t, managerID, mid)
				assert.Equal(t, leaveID, id)
				assert.Empty(t, comment)
				return leave.LeaveResponse{ID: id, Status: "approved"}, nil
			},
		}
		router := newTestRouter(svc, managerID)

		req, _ := http.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/approve", strings.NewReader(""))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("success with comment", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, mid, id, comment string) (leave.LeaveResponse, error) {
				assert.Equal(t, "Enjoy", comment)
				return leave.LeaveResponse{ID: id, Status: "approved"}, nil
			},
		}
		router := newTestRouter(svc, managerID)

		req, _ := http.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/approve", strings.NewReader(`{"manager_comment":"Enjoy"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative already decided maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, mid, id, comment string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		router := newTestRouter(svc, managerID)

		req, _ := http.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/approve", strings.NewReader(""))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("negative not found maps to 404", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, mid, id, comment string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		router := newTestRouter(svc, managerID)

		req, _ := http.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/approve", strings.NewReader(""))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	employeeID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, eid, id string) error {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, leaveID, id)
				return nil
			},
		}
		router := newTestRouter(svc, employeeID)

		req, _ := http.NewRequest(http.MethodDelete, "/leaves/"+leaveID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative already decided", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, eid, id string) error {
				return leaveerrors.ErrInvalidStatusTransition
			},
		}
		router := newTestRouter(svc, employeeID)

		req, _ := http.NewRequest(http.MethodDelete, "/leaves/"+leaveID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetBalance(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, eid string) (leave.BalanceResponse, error) {
				assert.Equal(t, employeeID, eid)
				return leave.BalanceResponse{SickLeave: 8, CasualLeave: 5, VacationLeave: 1}, nil
			},
		}
		router := newTestRouter(svc, employeeID)

		req, _ := http.NewRequest(http.MethodGet, "/leaves/balance", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())

		var resp leave.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 8, resp.SickLeave)
		assert.Equal(t, 1, resp.VacationLeave)
	})
}

func TestLeaveHandler_GetMine(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success passes status filter through", func(t *testing.T) {
		svc := &fakeLeaveService{
			getMineFn: func(ctx context.Context, eid, statusFilter string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "approved", statusFilter)
				return []leave.LeaveResponse{{ID: uuid.New().String(), Status: "approved"}}, nil
			},
		}
		router := newTestRouter(svc, employeeID)

		req, _ := http.NewRequest(http.MethodGet, "/leaves/my-requests?status=approved", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
