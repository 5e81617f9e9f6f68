// Package client calls the authentication service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/httputil"
)

const (
	usersPath   = "/_api/authentication/v1/users"
	companyPath = "/_api/authentication/v1/companies/%d/"
)

// TokenIssuer signs the internal admin token attached to privileged calls.
type TokenIssuer interface {
	IssueInternalToken() (string, error)
}

// Client is an HTTP client for the authentication service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenIssuer
}

// New creates a Client for baseURL. Every call is bounded by timeout.
func New(baseURL string, timeout time.Duration, tokens TokenIssuer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tokens: tokens,
	}
}

// GetUsers lists the users of a company, optionally narrowed by permission level and feature.
func (c *Client) GetUsers(ctx context.Context, query authDomain.UsersQuery) ([]authDomain.AuthUser, error) {
	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(query.CompanyID, 10))
	if query.PermissionLevel != nil {
		params.Set("permission_level", *query.PermissionLevel)
	}
	if query.PermissionsFeature != nil {
		params.Set("permissions_feature", *query.PermissionsFeature)
	}

	var users []authDomain.AuthUser
	if err := c.get(ctx, usersPath+"?"+params.Encode(), false, &users); err != nil {
		return nil, apperrors.Wrap(err, "failed to get users")
	}
	return users, nil
}

// GetCompany fetches a company with the internal admin token. An unknown company returns
// ErrCompanyNotFound.
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	var company authDomain.Company
	if err := c.get(ctx, fmt.Sprintf(companyPath, companyID), true, &company); err != nil {
		if apperrors.Is(err, authDomain.ErrCompanyNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to get company")
	}
	return &company, nil
}

func (c *Client) get(ctx context.Context, path string, admin bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	if admin {
		token, err := c.tokens.IssueInternalToken()
		if err != nil {
			return err
		}
		req.Header.Set(httputil.AuthorizationHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound && admin:
		return authDomain.ErrCompanyNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
