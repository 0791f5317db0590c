package models

// InventoryItem tracks the on-hand quantity of a named stock item.
type InventoryItem struct {
	Seq      int    `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	Name     string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Quantity int    `gorm:"column:quantity;not null" json:"quantity"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

func (i *InventoryItem) SetSequence(seq int) { i.Seq = seq }
