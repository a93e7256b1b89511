package airports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultLookupHost = "https://airportdb.io"

// ErrUnknownCode is returned by Lookup when the service does not recognize
// the airport code (HTTP 404). Callers treat it as a validation failure
// against the offending input, not as a fault.
var ErrUnknownCode = errors.New("airport code not recognized")

// Info is the enrichment payload returned for a valid 4-letter ICAO code.
type Info struct {
	Name    string `json:"name"`
	City    string `json:"municipality"`
	Country string `json:"iso_country"`
	Code    string `json:"icao_code"`
}

// LookupClient queries airportdb.io for airport metadata. It is used only
// for input validation and display enrichment during onboarding.
type LookupClient struct {
	host       string
	token      string
	httpClient *http.Client
}

// NewLookupClient returns a client against the given host (empty means the
// public airportdb.io instance).
func NewLookupClient(host, token string) *LookupClient {
	if host == "" {
		host = defaultLookupHost
	}
	return &LookupClient{
		host:       host,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches metadata for an ICAO airport code. A 404 from the service
// maps to ErrUnknownCode; any other non-2xx response is a generic failure.
func (c *LookupClient) Lookup(ctx context.Context, code string) (*Info, error) {
	url := fmt.Sprintf("%s/api/v1/airport/%s?apiToken=%s", c.host, code, c.token)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "calling airport service")
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrUnknownCode
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, errors.Errorf("airport service returned %s", response.Status)
	}

	info := &Info{}
	if err := json.NewDecoder(response.Body).Decode(info); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	return info, nil
}
