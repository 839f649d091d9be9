package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryDay là một dòng ledger cho (property, room type, date)
type InventoryDay struct {
	ID                string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	PropertyID        string    `json:"propertyId" gorm:"type:varchar(36);not null;uniqueIndex:idx_inventory_key,priority:1"`
	RoomTypeID        string    `json:"roomTypeId" gorm:"type:varchar(36);not null;uniqueIndex:idx_inventory_key,priority:2"`
	Date              string    `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_inventory_key,priority:3"`
	TotalUnits        int       `json:"totalUnits" gorm:"not null;default:0"`
	BookedUnits       int       `json:"bookedUnits" gorm:"not null;default:0"`
	BlockedUnits      int       `json:"blockedUnits" gorm:"not null;default:0"`
	RateOverrideCents *int64    `json:"rateOverrideCents"`
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (InventoryDay) TableName() string {
	return "inventory_days"
}

// Available = total - booked - blocked
func (d *InventoryDay) Available() int {
	return d.TotalUnits - d.BookedUnits - d.BlockedUnits
}

func (d *InventoryDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
