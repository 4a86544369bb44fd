package models

import (
	"encoding/json"
	"time"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/jptime"
)

// ReportRequest parameterizes one capture-and-publish run.
// User is echoed back to the caller and never persisted.
type ReportRequest struct {
	User         string      `json:"user" validate:"required"`
	Location     string      `json:"location" validate:"required"`
	Title        string      `json:"title,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	GenerateDate *ReportDate `json:"generateDate,omitempty"`
}

// ReportDate is an ISO-8601 timestamp as clients send it: with an offset,
// or zoneless, in which case the value is taken as UTC.
type ReportDate struct {
	time.Time
}

func (d *ReportDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := jptime.Parse(s)
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

type Report struct {
	MovieID  string
	URL      string
	User     string
	Location string
}
