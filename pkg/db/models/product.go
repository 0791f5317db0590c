package models

import "github.com/shopspring/decimal"

// Product is one catalog entry. ID is unique across the catalog.
type Product struct {
	Seq     int             `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	ID      string          `gorm:"column:id;not null;uniqueIndex" json:"id"`
	Name    string          `gorm:"column:name;not null" json:"name"`
	Type    string          `gorm:"column:type;not null" json:"type"`
	Details string          `gorm:"column:details;not null;default:''" json:"details"`
	Price   decimal.Decimal `gorm:"column:price;type:numeric;not null" json:"price"`
}

func (Product) TableName() string { return "products" }

// SetSequence records the insertion position used to order table snapshots.
func (p *Product) SetSequence(seq int) { p.Seq = seq }
