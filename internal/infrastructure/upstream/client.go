// Package upstream adaptador HTTP de ports.PortalAPI. Habla JSON con la API
// REST usando el agent cliente de fiber y convierte los códigos de error en
// errores de dominio.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/application/ports"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa el puerto.
var _ ports.PortalAPI = (*Client)(nil)

// Recorder recibe una observación por llamada upstream. *metrics.Metrics lo implementa.
type Recorder interface {
	UpstreamCall(operation, status string, d time.Duration)
}

// Client llama a la API REST upstream.
type Client struct {
	baseURL string
	timeout time.Duration
	log     *logger.Logger
	rec     Recorder
}

// NewClient construye un cliente para baseURL (sin slash final).
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger, rec Recorder) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{baseURL: baseURL, timeout: timeout, log: log.Component("upstream"), rec: rec}
}

// APIError respuesta no 2xx de la API upstream.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Fields mensajes de validación por campo de un 422, con claves como dto.FieldErrors.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("upstream %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.Status)
}

// Unwrap convierte el código en error de dominio para usar errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case fiber.StatusUnauthorized:
		return domain.ErrUnauthorized
	case fiber.StatusForbidden:
		return domain.ErrForbidden
	case fiber.StatusNotFound:
		return domain.ErrNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case fiber.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrUpstream
	}
}

type call struct {
	operation string
	method    string
	path      string
	token     string
	body      any
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(in.method)
	req.SetRequestURI(c.baseURL + in.path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.ContentType(fiber.MIMEApplicationJSON)
	if in.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+in.token)
	}
	if in.body != nil {
		a.JSON(in.body)
	}
	a.Timeout(timeout)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	type result struct {
		status int
		body   []byte
		errs   []error
	}
	// Bytes devuelve el agent al pool; desde aquí es de la goroutine.
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		status, body, errs := a.Bytes()
		done <- result{status: status, body: body, errs: errs}
	}()

	var res result
	select {
	case <-ctx.Done():
		c.record(in.operation, "canceled", time.Since(start))
		c.log.Warn().Err(ctx.Err()).Str("operation", in.operation).Msg("upstream request abandoned")
		return ctx.Err()
	case res = <-done:
	}
	status, body, errs := res.status, res.body, res.errs
	elapsed := time.Since(start)

	if len(errs) > 0 {
		c.record(in.operation, "error", elapsed)
		c.log.Error().Err(errs[0]).Str("operation", in.operation).Msg("upstream request failed")
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, in.operation, errs[0])
	}
	c.record(in.operation, strconv.Itoa(status), elapsed)

	if status >= 400 {
		apiErr := &APIError{Status: status}
		var er dto.ErrorResponse
		if json.Unmarshal(body, &er) == nil {
			apiErr.Code, apiErr.Message, apiErr.Fields = er.Code, er.Message, er.Fields
		}
		c.log.Warn().
			Str("operation", in.operation).
			Int("status", status).
			Str("code", apiErr.Code).
			Msg("upstream rejected request")
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrUpstream, in.operation, err)
	}
	return nil
}

func (c *Client) record(operation, status string, d time.Duration) {
	if c.rec != nil {
		c.rec.UpstreamCall(operation, status, d)
	}
}

func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, call{operation: "login", method: fiber.MethodPost, path: "/auth/login", body: in}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" || !out.User.Valid() {
		return nil, fmt.Errorf("%w: login response without token or user", domain.ErrUpstream)
	}
	return &out, nil
}

func (c *Client) CreateRegistration(ctx context.Context, in dto.RegistrationDraft) (*dto.RegistrationResponse, error) {
	var out dto.RegistrationResponse
	err := c.do(ctx, call{operation: "create_registration", method: fiber.MethodPost, path: "/registrations", body: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRegistrations(ctx context.Context, token, status string) ([]entity.Registration, error) {
	path := "/registrations"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out dto.RegistrationListResponse
	if err := c.do(ctx, call{operation: "list_registrations", method: fiber.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetRegistration(ctx context.Context, token, id string) (*entity.Registration, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var out entity.Registration
	err := c.do(ctx, call{operation: "get_registration", method: fiber.MethodGet, path: "/registrations/" + url.PathEscape(id), token: token}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRegistrationStatus(ctx context.Context, token, id string, in dto.StatusUpdateRequest) (*entity.Registration, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var out entity.Registration
	err := c.do(ctx, call{
		operation: "update_registration_status",
		method:    fiber.MethodPatch,
		path:      "/registrations/" + url.PathEscape(id) + "/status",
		token:     token,
		body:      in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.UserRecord, error) {
	var out dto.UserListResponse
	if err := c.do(ctx, call{operation: "list_users", method: fiber.MethodGet, path: "/users", token: token}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListSchedules(ctx context.Context, token string) ([]entity.Assignment, error) {
	var out dto.AssignmentListResponse
	if err := c.do(ctx, call{operation: "list_schedules", method: fiber.MethodGet, path: "/schedules", token: token}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
