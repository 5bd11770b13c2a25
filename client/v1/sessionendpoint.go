package v1

import (
	"encoding/json"
	"time"
)

const basePath = "/api/timeclock/v1.0"

type envelope[T any] struct {
	Data T `json:"data"`
}

type searchEnvelope[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type LocationDTO struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   float64    `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

type ShiftEntryDTO struct {
	ID           uint       `json:"id"`
	CompanyID    string     `json:"companyId"`
	WorkerID     uint       `json:"workerId"`
	JobID        *uint      `json:"jobId,omitempty"`
	ClockIn      time.Time  `json:"clockIn"`
	ClockOut     *time.Time `json:"clockOut,omitempty"`
	BreakMinutes int        `json:"breakMinutes"`
	Status       string     `json:"status"`
	Attested     bool       `json:"attested"`
}

type BreakDTO struct {
	ID         string     `json:"id"`
	BreakType  string     `json:"breakType"`
	BreakStart time.Time  `json:"breakStart"`
	BreakEnd   *time.Time `json:"breakEnd,omitempty"`
	Waived     bool       `json:"waived"`
}

type AttestationDTO struct {
	SignatureKey    string `json:"signatureKey,omitempty"`
	MissedMealBreak bool   `json:"missedMealBreak"`
	MissedMealNotes string `json:"missedMealNotes,omitempty"`
	MissedRestBreak bool   `json:"missedRestBreak"`
	MissedRestNotes string `json:"missedRestNotes,omitempty"`
}

type StatusDTO struct {
	Entry        *ShiftEntryDTO `json:"entry"`
	Breaks       []BreakDTO     `json:"breaks"`
	OnBreak      bool           `json:"onBreak"`
	HoursWorked  float64        `json:"hoursWorked"`
	ActiveAlerts []AlertDTO     `json:"activeAlerts"`
}

type SessionEndpoint struct {
	transport *Transport
}

func (ep *SessionEndpoint) ClockIn(jobID *uint, loc *LocationDTO) (*ShiftEntryDTO, error) {
	payload := map[string]interface{}{}
	if jobID != nil {
		payload["jobId"] = *jobID
	}
	if loc != nil {
		payload["location"] = loc
	}

	resp, err := ep.transport.Post(basePath+"/clock-in", payload, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*ShiftEntryDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *SessionEndpoint) ClockOut(att *AttestationDTO, loc *LocationDTO) (*ShiftEntryDTO, error) {
	payload := map[string]interface{}{"attestation": att}
	if loc != nil {
		payload["location"] = loc
	}

	resp, err := ep.transport.Post(basePath+"/clock-out", payload, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*ShiftEntryDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *SessionEndpoint) StartBreak(breakType string) (*BreakDTO, error) {
	resp, err := ep.transport.Post(basePath+"/breaks", map[string]string{"breakType": breakType}, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*BreakDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *SessionEndpoint) EndBreak() (*BreakDTO, error) {
	resp, err := ep.transport.Put(basePath+"/breaks/end", map[string]string{}, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*BreakDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *SessionEndpoint) WaiveMealBreak() (*BreakDTO, error) {
	resp, err := ep.transport.Post(basePath+"/breaks/waive-meal", map[string]string{}, nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*BreakDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *SessionEndpoint) Status() (*StatusDTO, error) {
	resp, err := ep.transport.Get(basePath+"/status", nil)
	if err != nil {
		return nil, err
	}

	var result envelope[*StatusDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
