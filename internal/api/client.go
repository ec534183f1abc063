// Package api is the typed client for the loan service REST API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "loanos-client/internal/common/errors"
	httpclient "loanos-client/internal/common/http"
	"loanos-client/internal/common/validation"
	"loanos-client/internal/models"
	"loanos-client/internal/workflow"
	"loanos-client/pkg/registry"
)

// Client calls the loan service. All methods take the caller's context;
// cancellation and the configured timeout end the request.
type Client struct {
	http     *httpclient.Client
	registry *registry.EndpointRegistry
}

func NewClient(hc *httpclient.Client, reg *registry.EndpointRegistry) *Client {
	if reg == nil {
		reg = registry.MustDefault()
	}
	return &Client{http: hc, registry: reg}
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	_, err := c.call(ctx, registry.EndpointRegister, nil, nil, req)
	return err
}

// Login exchanges credentials for a bearer token. The token is returned
// as issued; the session store decides what to do with it.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.fetch(ctx, registry.EndpointLogin, nil, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var out []models.Application
	if err := c.fetch(ctx, registry.EndpointListApplications, nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitApplication(ctx context.Context, draft models.ApplicationDraft) error {
	_, err := c.call(ctx, registry.EndpointSubmitApplication, nil, nil, draft)
	return err
}

func (c *Client) GetApplication(ctx context.Context, id int64) (*models.ApplicationDetail, error) {
	var out models.ApplicationDetail
	if err := c.fetch(ctx, registry.EndpointGetApplication, idParam(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListApplications lists every application. Eligible must be "", "true"
// or "false"; anything else is rejected before a request is sent.
func (c *Client) AdminListApplications(ctx context.Context, filter models.AdminFilter) ([]models.Application, error) {
	query, err := filterQuery(filter)
	if err != nil {
		return nil, err
	}
	var out []models.Application
	if err := c.fetch(ctx, registry.EndpointAdminList, nil, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminGetApplication(ctx context.Context, id int64) (*models.ApplicationDetail, error) {
	var out models.ApplicationDetail
	if err := c.fetch(ctx, registry.EndpointAdminGetApplication, idParam(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RunKYC(ctx context.Context, id int64) error {
	_, err := c.call(ctx, registry.EndpointRunKYC, idParam(id), nil, nil)
	return err
}

func (c *Client) RunCredit(ctx context.Context, id int64) error {
	_, err := c.call(ctx, registry.EndpointRunCredit, idParam(id), nil, nil)
	return err
}

func (c *Client) RunEligibility(ctx context.Context, id int64) error {
	_, err := c.call(ctx, registry.EndpointRunEligibility, idParam(id), nil, nil)
	return err
}

// Run triggers the server-side step behind a workflow action.
func (c *Client) Run(ctx context.Context, action workflow.Action, id int64) error {
	if prefix := action.Endpoint(); prefix != "" {
		for _, ep := range c.registry.Endpoints {
			if ep.Method == http.MethodPost && ep.Path == prefix+"/{id}" {
				_, err := c.call(ctx, ep.ID, idParam(id), nil, nil)
				return err
			}
		}
	}
	return apperrors.NewValidationError(fmt.Sprintf("unknown action %q", action))
}

func (c *Client) fetch(ctx context.Context, endpointID string, params map[string]string, query url.Values, body, out interface{}) error {
	resp, err := c.call(ctx, endpointID, params, query, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return apperrors.NewResponseDecodeError(endpointID, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, endpointID string, params map[string]string, query url.Values, body interface{}) (*httpclient.Response, error) {
	ep, ok := c.registry.Lookup(endpointID)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("endpoint %s is not registered", endpointID))
	}
	path, err := ep.Expand(params)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	resp, err := c.http.Send(ctx, httpclient.Request{
		Endpoint: ep.ID,
		Method:   ep.Method,
		Path:     path,
		Query:    query,
		Body:     body,
		Auth:     ep.Auth,
	})
	if err != nil {
		return nil, err
	}

	if ep.ResponseSchema != nil {
		result, err := validation.ValidateDocument(resp.Body, ep.ResponseSchema)
		if err != nil {
			return nil, apperrors.NewResponseDecodeError(ep.ID, err)
		}
		if !result.Valid {
			return nil, apperrors.NewResponseDecodeError(ep.ID,
				fmt.Errorf("schema violations: %s", strings.Join(result.GetErrorMessages(), "; ")))
		}
	}
	return resp, nil
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

func filterQuery(f models.AdminFilter) (url.Values, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	switch f.Eligible {
	case "":
	case "true", "false":
		q.Set("eligible", f.Eligible)
	default:
		return nil, apperrors.NewInvalidFilterError("eligible", f.Eligible)
	}
	return q, nil
}
