package models

import "time"

// Order is a customer order. Status is the only field that changes after creation.
type Order struct {
	Seq          int       `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	ID           string    `gorm:"column:id;not null;uniqueIndex" json:"id"`
	Status       string    `gorm:"column:status;not null" json:"status"`
	Items        []string  `gorm:"column:items;serializer:json;not null" json:"items"`
	CustomerName string    `gorm:"column:customer_name;not null;default:''" json:"customer_name,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) SetSequence(seq int) { o.Seq = seq }
