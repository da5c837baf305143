// Package decode wraps the external VIN decode provider and maps its
// response onto the domain VehicleInfo. Responses are validated at this
// boundary; a partially-shaped vehicle never propagates downstream.
package decode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// Client calls the VIN decode provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a decode client for the given provider base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// decodeResponse is the provider's wire shape (vPIC flat-format decode).
type decodeResponse struct {
	Results []struct {
		Make            string `json:"Make"`
		Model           string `json:"Model"`
		ModelYear       string `json:"ModelYear"`
		BodyClass       string `json:"BodyClass"`
		EngineCylinders string `json:"EngineCylinders"`
		FuelTypePrimary string `json:"FuelTypePrimary"`
	} `json:"Results"`
}

// Decode resolves a normalized 17-character VIN to a VehicleInfo. The call
// is idempotent and has no side effect beyond the network request.
func (c *Client) Decode(ctx context.Context, vin string) (*models.VehicleInfo, error) {
	url := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", c.baseURL, vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.DecodeError{Msg: "decode request failed", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.DecodeError{Msg: "decode request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.DecodeError{
			Msg:   "decode request failed",
			Cause: fmt.Errorf("provider returned status %d", resp.StatusCode),
		}
	}

	var body decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &models.DecodeError{Msg: "decode response malformed", Cause: err}
	}

	if len(body.Results) == 0 {
		return nil, &models.DecodeError{Msg: "unrecognized VIN"}
	}

	r := body.Results[0]
	year, _ := strconv.Atoi(strings.TrimSpace(r.ModelYear))
	// Make, model and year form the safety-feed key; a decode missing any
	// of them cannot drive a safety lookup.
	if r.Make == "" || r.Model == "" || year == 0 {
		return nil, &models.DecodeError{Msg: "unrecognized VIN"}
	}

	info := &models.VehicleInfo{
		VIN:       vin,
		Make:      r.Make,
		Model:     r.Model,
		ModelYear: year,
		BodyClass: r.BodyClass,
		FuelType:  r.FuelTypePrimary,
	}
	if cyl, err := strconv.Atoi(strings.TrimSpace(r.EngineCylinders)); err == nil {
		info.EngineCylinders = &cyl
	}

	log.WithFields(log.Fields{
		"vin":   vin,
		"make":  info.Make,
		"model": info.Model,
		"year":  info.ModelYear,
	}).Debug("decoded VIN")

	return info, nil
}
