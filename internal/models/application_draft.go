package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftStatus is the lifecycle state of an application draft
type DraftStatus string

const (
	// DraftStatusDraft drafts can still be edited and moved between steps
	DraftStatusDraft DraftStatus = "DRAFT"
	// DraftStatusSubmitted drafts are final
	DraftStatusSubmitted DraftStatus = "SUBMITTED"
)

// ApplicationDraft persists a wallet's in-progress beneficiary application
type ApplicationDraft struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerAddress string          `gorm:"size:42;not null;index" json:"owner_address"`
	Step         int             `gorm:"not null;default:0" json:"step"`
	Status       DraftStatus     `gorm:"size:20;not null;default:DRAFT;index" json:"status"`
	Form         ApplicationForm `gorm:"serializer:json;type:text" json:"form"`
	SubmittedAt  *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for ApplicationDraft model
func (ApplicationDraft) TableName() string {
	return "application_drafts"
}

// BeforeCreate assigns a UUID when none was set
func (d *ApplicationDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
