package clients

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"category_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// AuthValidateResponse mirrors the auth service response envelope.
type AuthValidateResponse struct {
	Status  string           `json:"Status"`
	Message string           `json:"Message"`
	Data    *domain.Identity `json:"Data"`
}

// AuthClient exchanges a bearer token for the caller's identity. This is the
// single trust boundary of the service: every mutation goes through it.
type AuthClient interface {
	ValidateToken(token string) (*domain.Identity, error)
}

type authHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewAuthHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) AuthClient {
	return &authHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// ValidateToken calls the auth service and classifies the response:
// 200 with a user payload succeeds, 401 means the token was rejected, a 200
// without a payload is treated as an invalid request rather than trusted,
// and every transport-level failure (including the client timeout) surfaces
// as an internal error.
func (c *authHTTPClient) ValidateToken(token string) (*domain.Identity, error) {
	if token == "" {
		c.log.Warn("AuthClient: Validation skipped - no token supplied")
		return nil, fmt.Errorf("%w: token was not provided", domain.ErrInvalidRequest)
	}

	url := fmt.Sprintf("%s/auth/validate", c.baseURL)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		c.log.Errorf("AuthClient: Failed to create validation request: %v", err)
		return nil, fmt.Errorf("%w: failed to create auth request: %v", domain.ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("AuthClient: Failed to reach auth service at %s: %v", c.baseURL, err)
		return nil, fmt.Errorf("%w: auth service unreachable: %v", domain.ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		msg := readRejectionMessage(resp.Body)
		c.log.Warnf("AuthClient: Token rejected by auth service: %s", msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthenticated, msg)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("AuthClient: Auth service returned unexpected status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: auth service returned status %d", domain.ErrInternal, resp.StatusCode)
	}

	var response AuthValidateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		c.log.Errorf("AuthClient: Failed to decode auth response: %v", err)
		return nil, fmt.Errorf("%w: failed to decode auth response: %v", domain.ErrInternal, err)
	}

	// A 200 with no user payload is indistinguishable from a misconfigured
	// auth service; never treat it as an authenticated caller.
	if response.Data == nil || response.Data.ID == 0 {
		c.log.Error("AuthClient: Auth service returned 200 with empty identity payload")
		return nil, fmt.Errorf("%w: response was not provided", domain.ErrInvalidRequest)
	}

	c.log.Infof("AuthClient: Token validated for user ID %d with role '%s'", response.Data.ID, response.Data.Role)
	return response.Data, nil
}

func readRejectionMessage(body io.Reader) string {
	var payload struct {
		Status  string `json:"Status"`
		Message string `json:"Message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "token rejected"
}
