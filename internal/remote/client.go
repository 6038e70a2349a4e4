// Package remote - типизированный HTTP-клиент удалённого сервиса сотрудников,
// посещаемости и статистики. Бизнес-логики здесь нет: один вызов - один запрос.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
)

const requestIDHeader = "X-Request-ID"

// Client обращается к REST API по базовому адресу
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient создаёт клиента. Нулевой timeout оставляет поведение транспорта по умолчанию.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := c.do(ctx, "list employees", http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	if err := c.do(ctx, "get employee", http.MethodGet, "/employees/"+itoa(id), nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	var emp domain.Employee
	if err := c.do(ctx, "create employee", http.MethodPost, "/employees", req, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee никогда не передаёт табельный номер: его нет в UpdateEmployeeRequest
func (c *Client) UpdateEmployee(ctx context.Context, id int64, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	var emp domain.Employee
	if err := c.do(ctx, "update employee", http.MethodPut, "/employees/"+itoa(id), req, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, "delete employee", http.MethodDelete, "/employees/"+itoa(id), nil, nil)
}

func (c *Client) ListAttendance(ctx context.Context) ([]domain.Attendance, error) {
	var records []domain.Attendance
	if err := c.do(ctx, "list attendance", http.MethodGet, "/attendance", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAttendanceByEmployee запрашивает отметки по Employee.ID (не по табельному номеру)
func (c *Client) ListAttendanceByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	var records []domain.Attendance
	if err := c.do(ctx, "list employee attendance", http.MethodGet, "/attendance/employee/"+itoa(employeeID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateAttendance(ctx context.Context, req dto.CreateAttendanceRequest) (*domain.Attendance, error) {
	var rec domain.Attendance
	if err := c.do(ctx, "create attendance", http.MethodPost, "/attendance", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*domain.Attendance, error) {
	var rec domain.Attendance
	if err := c.do(ctx, "update attendance", http.MethodPut, "/attendance/"+itoa(id), req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeleteAttendance(ctx context.Context, id int64) error {
	return c.do(ctx, "delete attendance", http.MethodDelete, "/attendance/"+itoa(id), nil, nil)
}

func (c *Client) EmployeeCount(ctx context.Context) (int64, error) {
	var resp dto.EmployeeCountResponse
	if err := c.do(ctx, "employee count", http.MethodGet, "/stats/employees/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalEmployees, nil
}

func (c *Client) AttendanceSummary(ctx context.Context, employeeID int64) (*dto.AttendanceSummaryResponse, error) {
	var resp dto.AttendanceSummaryResponse
	path := "/stats/employees/" + itoa(employeeID) + "/attendance-summary"
	if err := c.do(ctx, "attendance summary", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do выполняет один запрос без повторов. Любая неудача возвращается как *domain.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.RemoteError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed",
			slog.String("op", op),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return &domain.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.logger.Debug("remote request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", requestID),
	)
	if err != nil {
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Detail: extractDetail(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// extractDetail достаёт строковое поле detail из тела ошибки, если оно есть
func extractDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if detail, ok := payload.Detail.(string); ok {
		return strings.TrimSpace(detail)
	}
	return ""
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
