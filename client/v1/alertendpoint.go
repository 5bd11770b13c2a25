package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

type AlertDTO struct {
	ID                   string     `json:"id"`
	CompanyID            string     `json:"companyId"`
	WorkerID             uint       `json:"workerId"`
	ShiftEntryID         uint       `json:"shiftEntryId"`
	AlertType            string     `json:"alertType"`
	Severity             string     `json:"severity"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	HoursWorkedAtTrigger float64    `json:"hoursWorkedAtTrigger"`
	Acknowledged         bool       `json:"acknowledged"`
	AcknowledgedAt       *time.Time `json:"acknowledgedAt,omitempty"`
	AcknowledgedBy       string     `json:"acknowledgedBy,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

type AlertSearchParams struct {
	StartDate    string   `json:"startDate"` // yyyy-MM-dd
	EndDate      string   `json:"endDate"`   // yyyy-MM-dd
	Workers      []uint   `json:"workers,omitempty"`
	AlertTypes   []string `json:"alertTypes,omitempty"`
	Severities   []string `json:"severities,omitempty"`
	Acknowledged *bool    `json:"acknowledged,omitempty"`
}

type AlertEndpoint struct {
	transport *Transport
}

func (ep *AlertEndpoint) Search(params *AlertSearchParams, limit, offset int) ([]AlertDTO, int64, error) {
	query := map[string]string{
		"limit":  fmt.Sprintf("%d", limit),
		"offset": fmt.Sprintf("%d", offset),
	}

	resp, err := ep.transport.Post(basePath+"/alerts/search", params, query)
	if err != nil {
		return nil, 0, err
	}

	var result searchEnvelope[AlertDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, 0, err
	}
	return result.Data, result.Pagination.Total, nil
}

func (ep *AlertEndpoint) Acknowledge(alertID string) error {
	_, err := ep.transport.Put(fmt.Sprintf("%s/alerts/%s/acknowledge", basePath, alertID), map[string]string{}, nil)
	return err
}
