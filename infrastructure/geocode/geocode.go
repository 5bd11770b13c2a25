package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client reverse-geocodes clock-in/out coordinates. Lookups are best effort:
// the caller bounds them with a context timeout and treats any failure as
// "no address".
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	base := os.Getenv("GEOCODE_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		BaseURL:    base,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Resolve returns the street address for a coordinate, or an error when the
// lookup fails or produces nothing.
func (c *Client) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	u, err := url.Parse(c.BaseURL + "/reverse")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "shiftguard-timeclock")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse lookup failed with status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.DisplayName == "" {
		return "", fmt.Errorf("no address for %.5f,%.5f", lat, lng)
	}
	return parsed.DisplayName, nil
}
