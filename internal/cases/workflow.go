package cases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("case not found")
	ErrValidation   = errors.New("validation failed")
	ErrUpdateFailed = errors.New("failed to update case")
	ErrCreateFailed = errors.New("failed to create case")
)

// Patch is the partial field set accepted by the transition operator. Nil
// means "not supplied". DeadlineSet distinguishes an explicit null deadline
// from an absent one.
type Patch struct {
	Title         *string
	Status        *string
	Value         *float64
	BrokerName    *string
	TaskOwnerName *string
	Deadline      *time.Time
	DeadlineSet   bool
}

// statusOnly reports whether the patch is a bare status change, i.e. a board
// drag move.
func (p Patch) statusOnly() bool {
	return p.Status != nil &&
		p.Title == nil && p.Value == nil &&
		p.BrokerName == nil && p.TaskOwnerName == nil &&
		!p.DeadlineSet
}

// NewClientInput carries inline client fields for case creation.
type NewClientInput struct {
	Name  string
	Name2 string
	Name3 string
	Email string
	Phone string
}

// CreateInput is the input to Engine.Create. AdvisorID must already be
// resolved by the caller (acting user or fallback).
type CreateInput struct {
	Title     string
	Status    string
	Value     float64
	ClientID  uint
	NewClient *NewClientInput
	AdvisorID uint
}

// Engine owns the case workflow: it validates and executes status
// transitions, derives the system activity log, and creates cases.
type Engine struct {
	Repo   Repository
	Stages []string
	Log    *logger.Logger
}

func NewEngine(repo Repository, stages []string, log *logger.Logger) *Engine {
	return &Engine{Repo: repo, Stages: stages, Log: log}
}

// Transition applies a partial update to the case and appends one SYSTEM
// activity per tracked field (status, broker, task owner) whose value
// changed. The snapshot and the primary write share one transaction; the
// audit appends run after commit and are best-effort, so a failed append
// never rolls back or masks the update.
func (e *Engine) Transition(db *gorm.DB, id uint, p Patch, actorID *uint) (*models.Case, error) {
	if p.Status != nil && strings.TrimSpace(*p.Status) == "" {
		return nil, fmt.Errorf("%w: status must not be empty", ErrValidation)
	}

	var before, updated models.Case
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&before, id).Error; err != nil {
			return err
		}
		updated = before
		if p.Title != nil {
			updated.Title = *p.Title
		}
		if p.Status != nil {
			updated.Status = *p.Status
		}
		if p.Value != nil {
			updated.Value = *p.Value
		}
		if p.BrokerName != nil {
			updated.BrokerName = p.BrokerName
		}
		if p.TaskOwnerName != nil {
			updated.TaskOwnerName = p.TaskOwnerName
		}
		if p.DeadlineSet {
			updated.Deadline = p.Deadline
		}
		// Moving a card resets its urgency marker.
		if p.statusOnly() {
			updated.Deadline = nil
		}
		return e.Repo.Save(tx, &updated)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	for _, msg := range systemMessages(&before, p) {
		a := models.Activity{
			CaseID:  id,
			UserID:  actorID,
			Kind:    models.ActivitySystem,
			Content: msg,
		}
		if err := db.Create(&a).Error; err != nil {
			e.Log.Warn("system activity append failed", "caseId", id, "err", err)
		}
	}
	return &updated, nil
}

// systemMessages diffs the tracked fields old-vs-new. Comparisons are plain
// inequality, no normalization, and only non-empty new values are logged.
func systemMessages(before *models.Case, p Patch) []string {
	var msgs []string
	if m := fieldChange("Status", before.Status, strDeref(p.Status)); m != "" {
		msgs = append(msgs, m)
	}
	if m := fieldChange("Broker", strDeref(before.BrokerName), strDeref(p.BrokerName)); m != "" {
		msgs = append(msgs, m)
	}
	if m := fieldChange("Task Owner", strDeref(before.TaskOwnerName), strDeref(p.TaskOwnerName)); m != "" {
		msgs = append(msgs, m)
	}
	return msgs
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fieldChange(label, oldVal, newVal string) string {
	if newVal == "" || newVal == oldVal {
		return ""
	}
	if oldVal == "" {
		return fmt.Sprintf("%s updated to %s", label, newVal)
	}
	return fmt.Sprintf("%s changed from %s to %s", label, oldVal, newVal)
}

// Create persists a new case, creating its client inline when requested, and
// assigns the next best-effort case number. The client create, the number
// scan and the case insert share one transaction.
func (e *Engine) Create(db *gorm.DB, in CreateInput) (*models.Case, error) {
	if in.NewClient == nil && in.ClientID == 0 {
		return nil, fmt.Errorf("%w: a clientId or inline client is required", ErrValidation)
	}
	if in.NewClient != nil && strings.TrimSpace(in.NewClient.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrValidation)
	}

	status := in.Status
	if strings.TrimSpace(status) == "" {
		status = e.Stages[0]
	}

	var created models.Case
	err := db.Transaction(func(tx *gorm.DB) error {
		clientID := in.ClientID
		if in.NewClient != nil {
			client := models.Client{
				Name:  in.NewClient.Name,
				Name2: in.NewClient.Name2,
				Name3: in.NewClient.Name3,
				Email: in.NewClient.Email,
				Phone: in.NewClient.Phone,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
			clientID = client.ID
		}

		latest, err := e.Repo.LatestCaseNumber(tx)
		if err != nil {
			return err
		}
		number := NextCaseNumber(latest)

		created = models.Case{
			CaseNumber: &number,
			Title:      in.Title,
			Status:     status,
			Value:      in.Value,
			ClientID:   clientID,
			AdvisorID:  in.AdvisorID,
		}
		return e.Repo.Create(tx, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	return &created, nil
}
