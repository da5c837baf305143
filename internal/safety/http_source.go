package safety

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// HTTPSourceClient queries the three safety feeds over HTTP. Each feed has
// its own base URL so they can point at different providers or a proxy.
type HTTPSourceClient struct {
	recallsURL        string
	complaintsURL     string
	investigationsURL string
	httpClient        *http.Client
}

// NewHTTPSourceClient creates a source client for the given feed base URLs.
func NewHTTPSourceClient(recallsURL, complaintsURL, investigationsURL string) *HTTPSourceClient {
	return &HTTPSourceClient{
		recallsURL:        strings.TrimRight(recallsURL, "/"),
		complaintsURL:     strings.TrimRight(complaintsURL, "/"),
		investigationsURL: strings.TrimRight(investigationsURL, "/"),
		httpClient:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPSourceClient) get(ctx context.Context, base string, key models.VehicleKey, out interface{}) error {
	q := url.Values{}
	q.Set("make", key.Make)
	q.Set("model", key.Model)
	q.Set("modelYear", strconv.Itoa(key.ModelYear))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseFeedDate accepts the date layouts the feeds are known to emit.
func parseFeedDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type recallResponse struct {
	Results []struct {
		NHTSACampaignNumber string `json:"NHTSACampaignNumber"`
		Component           string `json:"Component"`
		Summary             string `json:"Summary"`
		Consequence         string `json:"Consequence"`
		Remedy              string `json:"Remedy"`
		ReportReceivedDate  string `json:"ReportReceivedDate"`
		Notes               string `json:"Notes"`
	} `json:"results"`
}

// Recalls queries the recall feed. Records missing their campaign number or
// component are dropped at the boundary rather than propagated half-shaped.
func (c *HTTPSourceClient) Recalls(ctx context.Context, key models.VehicleKey) ([]models.Recall, error) {
	var body recallResponse
	if err := c.get(ctx, c.recallsURL, key, &body); err != nil {
		return nil, err
	}

	recalls := make([]models.Recall, 0, len(body.Results))
	for _, r := range body.Results {
		if r.NHTSACampaignNumber == "" || r.Component == "" {
			log.WithField("campaign", r.NHTSACampaignNumber).Warn("skipping malformed recall record")
			continue
		}
		reported, ok := parseFeedDate(r.ReportReceivedDate)
		if !ok {
			log.WithField("campaign", r.NHTSACampaignNumber).Warn("skipping recall with unparseable date")
			continue
		}
		recalls = append(recalls, models.Recall{
			ID:             r.NHTSACampaignNumber,
			CampaignNumber: r.NHTSACampaignNumber,
			Component:      r.Component,
			Summary:        r.Summary,
			Consequence:    r.Consequence,
			Remedy:         r.Remedy,
			ReportedDate:   reported,
			Notes:          r.Notes,
		})
	}
	return recalls, nil
}

type complaintResponse struct {
	Results []struct {
		ODINumber          json.Number `json:"odiNumber"`
		Components         string      `json:"components"`
		Summary            string      `json:"summary"`
		DateComplaintFiled string      `json:"dateComplaintFiled"`
		DateOfIncident     string      `json:"dateOfIncident"`
	} `json:"results"`
}

// Complaints queries the consumer complaint feed.
func (c *HTTPSourceClient) Complaints(ctx context.Context, key models.VehicleKey) ([]models.Complaint, error) {
	var body complaintResponse
	if err := c.get(ctx, c.complaintsURL, key, &body); err != nil {
		return nil, err
	}

	complaints := make([]models.Complaint, 0, len(body.Results))
	for _, r := range body.Results {
		odi := r.ODINumber.String()
		if odi == "" || odi == "0" {
			log.Warn("skipping complaint without ODI number")
			continue
		}
		added, _ := parseFeedDate(r.DateComplaintFiled)
		failed, _ := parseFeedDate(r.DateOfIncident)
		complaints = append(complaints, models.Complaint{
			ID:          odi,
			ODINumber:   odi,
			Component:   r.Components,
			Summary:     r.Summary,
			DateAdded:   added,
			FailureDate: failed,
		})
	}
	return complaints, nil
}

type investigationResponse struct {
	Results []struct {
		ActionNumber         string `json:"actionNumber"`
		InvestigationType    string `json:"investigationType"`
		ComponentDescription string `json:"componentDescription"`
		Summary              string `json:"summary"`
		OpenDate             string `json:"openDate"`
	} `json:"results"`
}

// Investigations queries the open-investigation feed.
func (c *HTTPSourceClient) Investigations(ctx context.Context, key models.VehicleKey) ([]models.Investigation, error) {
	var body investigationResponse
	if err := c.get(ctx, c.investigationsURL, key, &body); err != nil {
		return nil, err
	}

	investigations := make([]models.Investigation, 0, len(body.Results))
	for _, r := range body.Results {
		if r.ActionNumber == "" {
			log.Warn("skipping investigation without action number")
			continue
		}
		opened, _ := parseFeedDate(r.OpenDate)
		investigations = append(investigations, models.Investigation{
			ID:                   r.ActionNumber,
			ActionNumber:         r.ActionNumber,
			InvestigationType:    r.InvestigationType,
			ComponentDescription: r.ComponentDescription,
			Summary:              r.Summary,
			OpenDate:             opened,
		})
	}
	return investigations, nil
}
