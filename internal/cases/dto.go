package cases

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hfpartners/case-api/internal/models"
)

type newClientRequest struct {
	Name  string `json:"name"`
	Name2 string `json:"name2"`
	Name3 string `json:"name3"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createCaseRequest struct {
	Title     string            `json:"title"`
	Status    string            `json:"status"`
	Value     float64           `json:"value"`
	ClientID  uint              `json:"clientId"`
	AdvisorID uint              `json:"advisorId"`
	NewClient *newClientRequest `json:"newClient"`
}

// updateCaseRequest keeps deadline as raw JSON so an explicit null (clear the
// deadline) can be told apart from an absent field.
type updateCaseRequest struct {
	Title         *string         `json:"title"`
	Status        *string         `json:"status"`
	Value         *float64        `json:"value"`
	BrokerName    *string         `json:"brokerName"`
	TaskOwnerName *string         `json:"taskOwnerName"`
	Deadline      json.RawMessage `json:"deadline"`
}

func (req updateCaseRequest) toPatch() (Patch, error) {
	p := Patch{
		Title:         req.Title,
		Status:        req.Status,
		Value:         req.Value,
		BrokerName:    req.BrokerName,
		TaskOwnerName: req.TaskOwnerName,
	}
	if len(req.Deadline) > 0 {
		p.DeadlineSet = true
		if string(req.Deadline) != "null" {
			var s string
			if err := json.Unmarshal(req.Deadline, &s); err != nil {
				return Patch{}, fmt.Errorf("invalid deadline: %w", err)
			}
			t, err := parseDate(s)
			if err != nil {
				return Patch{}, err
			}
			p.Deadline = &t
		}
	}
	return p, nil
}

// parseDate accepts RFC 3339 timestamps and bare calendar dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q", s)
	}
	return t, nil
}

// CaseView decorates a case with its computed urgency tier. The tier is
// derived on every read, never stored.
type CaseView struct {
	models.Case
	Urgency Tier `json:"urgency"`
}

// BoardColumn is one rendered column of the task-flow board.
type BoardColumn struct {
	Column string     `json:"column"`
	Cases  []CaseView `json:"cases"`
}

func toView(c models.Case, policy UrgencyPolicy, now time.Time) CaseView {
	return CaseView{Case: c, Urgency: policy.Classify(c.Deadline, now)}
}

func toViews(list []models.Case, policy UrgencyPolicy, now time.Time) []CaseView {
	out := make([]CaseView, 0, len(list))
	for _, c := range list {
		out = append(out, toView(c, policy, now))
	}
	return out
}
