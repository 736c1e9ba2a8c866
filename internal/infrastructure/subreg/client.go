package subreg

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/contract"
	"github.com/opslake/subregops/internal/domain/retry"
	"github.com/opslake/subregops/internal/infrastructure/logger"
	"github.com/opslake/subregops/internal/infrastructure/soap"
)

const (
	DefaultEndpoint = "https://subreg.cz/soap/cmd.php"
	Namespace       = "http://subreg.cz/wsdl"
)

// Client wraps the registrar's SOAP command surface. A session token (ssid)
// obtained by Login rides along on every subsequent command; when the server
// reports the session expired the client logs in again transparently and
// replays the command once.
type Client struct {
	soap     *soap.Client
	username string
	password string
	log      *logger.Logger

	mu   sync.Mutex
	ssid string
}

var (
	_ contract.Registrar = (*Client)(nil)
	_ contract.Account   = (*Client)(nil)
)

type Option func(*Client)

func WithSOAPClient(sc *soap.Client) Option {
	return func(c *Client) {
		c.soap = sc
	}
}

func NewClient(endpoint, username, password string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		soap:     soap.NewClient(endpoint, Namespace),
		username: username,
		password: password,
		log:      logger.WithFields("component", "subreg"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login opens a session. Callers normally never need this: call lazily logs
// in on first use.
func (c *Client) Login(ctx context.Context) error {
	data, err := c.rawCall(ctx, "Login", soap.Params{
		{Key: "login", Value: c.username},
		{Key: "password", Value: c.password},
	})
	if err != nil {
		return domain.WrapOp("login", err)
	}
	ssid := data.Get("ssid").String()
	if ssid == "" {
		return fmt.Errorf("%w: login response carries no ssid", domain.ErrInvalidResponse)
	}
	c.mu.Lock()
	c.ssid = ssid
	c.mu.Unlock()
	c.log.Debug("session opened", "user", c.username)
	return nil
}

func (c *Client) session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ssid
}

// call runs an authenticated command with transient-fault retry and one
// transparent re-login on session expiry.
func (c *Client) call(ctx context.Context, command string, params soap.Params) (*soap.Value, error) {
	if c.session() == "" {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	return retry.DoWithResult(ctx, func() (*soap.Value, error) {
		data, err := c.rawCall(ctx, command, params.Set("ssid", c.session()))
		if errors.Is(err, domain.ErrSessionExpired) {
			c.log.Debug("session expired, logging in again", "command", command)
			if loginErr := c.Login(ctx); loginErr != nil {
				return nil, loginErr
			}
			return c.rawCall(ctx, command, params.Set("ssid", c.session()))
		}
		return data, err
	})
}

// rawCall posts one command and maps the status/error envelope to Go errors.
func (c *Client) rawCall(ctx context.Context, command string, params soap.Params) (*soap.Value, error) {
	response, err := c.soap.Call(ctx, command, params)
	if err != nil {
		return nil, err
	}

	switch response.Get("status").String() {
	case "ok":
		return response.Get("data"), nil
	case "error":
		apiErr := &APIError{
			Command: command,
			Message: response.Get("error", "errormsg").String(),
			Major:   response.Get("error", "errorcode", "major").Int(),
			Minor:   response.Get("error", "errorcode", "minor").Int(),
		}
		return nil, apiErr
	default:
		return nil, fmt.Errorf("%w: %s reported status %q", domain.ErrInvalidResponse, command, response.Get("status").String())
	}
}
