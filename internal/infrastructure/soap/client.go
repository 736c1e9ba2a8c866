package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/infrastructure/logger"
)

const DefaultTimeout = 30 * time.Second

// Fault is a SOAP-level fault returned by the endpoint, distinct from the
// application-level error structs carried inside a successful envelope.
type Fault struct {
	Code   string
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// Client posts RPC-style commands to a single SOAP 1.1 endpoint.
type Client struct {
	endpoint   string
	namespace  string
	httpClient *http.Client
	log        *logger.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(endpoint, namespace string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		namespace:  namespace,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.WithFields("component", "soap"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call posts one command and returns the decoded response tree. Network and
// HTTP 5xx failures are marked transient so callers can retry them; SOAP
// faults and 4xx responses are not.
func (c *Client) Call(ctx context.Context, command string, data Params) (*Value, error) {
	body, err := BuildEnvelope(c.namespace, command, data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", c.namespace+"#"+command))

	c.log.Debug("soap call", "command", command, "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTransient, command, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %v", domain.ErrTransient, command, err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", domain.ErrTransient, command, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", command, resp.StatusCode)
	}

	value, err := decodeResponse(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", command, err)
	}
	return value, nil
}

// decodeResponse unwraps the envelope down to the command's return value.
// The endpoint nests the result as Body > {command}Response > response; both
// wrapper levels are peeled when present.
func decodeResponse(payload []byte) (*Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))

	if err := seekElement(dec, "Body"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	start, err := nextStart(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: empty body", domain.ErrInvalidResponse)
	}

	if start.Name.Local == "Fault" {
		return nil, decodeFault(dec, start)
	}

	value, err := DecodeValue(dec, start)
	if err != nil {
		return nil, err
	}

	// peel the wrapper struct around the actual response payload
	for value.IsMap() && !value.Has("status") && len(value.Keys()) == 1 {
		value = value.Get(value.Keys()[0])
	}
	return value, nil
}

func decodeFault(dec *xml.Decoder, start xml.StartElement) error {
	value, err := DecodeValue(dec, start)
	if err != nil {
		return errors.Join(domain.ErrInvalidResponse, err)
	}
	return &Fault{
		Code:   value.Get("faultcode").String(),
		String: value.Get("faultstring").String(),
	}
}

func seekElement(dec *xml.Decoder, local string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("element %s not found", local)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == local {
			return nil
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("no element")
		}
	}
}
