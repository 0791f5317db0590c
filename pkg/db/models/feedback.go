package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a short free-text note left by a customer.
type Feedback struct {
	Seq       int       `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	ID        uuid.UUID `gorm:"column:id;not null;uniqueIndex" json:"id"`
	Text      string    `gorm:"column:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) SetSequence(seq int) { f.Seq = seq }
