package models

import "time"

// Activity kinds.
const (
	ActivityComment = "COMMENT"
	ActivitySystem  = "SYSTEM"
)

// Case is one pipeline item: a client's application moving through the
// advisory stages. Cases are hard-deleted, so there is no DeletedAt.
type Case struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CaseNumber    *string    `json:"caseNumber"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	Value         float64    `json:"value"`
	BrokerName    *string    `json:"brokerName"`
	TaskOwnerName *string    `json:"taskOwnerName"`
	Deadline      *time.Time `json:"deadline"`

	ClientID uint   `json:"clientId"`
	Client   Client `json:"client"`

	AdvisorID uint `json:"advisorId"`
	Advisor   User `json:"advisor"`

	Activities []Activity `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}

// Activity is an immutable, append-only log entry attached to a case. UserID
// is nil for entries with no author. Never updated or deleted on its own;
// the owning case's deletion cascades.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	CaseID  uint   `json:"caseId"`
	UserID  *uint  `json:"userId"`
	User    *User  `json:"user,omitempty"`
	Kind    string `json:"type"`
	Content string `json:"content"`
}
