package services

import (
	"context"
	"fmt"

	"staydesk/models"
	"staydesk/repository"
	"staydesk/utils"

	"gorm.io/gorm"
)

// InventoryReverser trả lại ledger khi reservation bị hủy hoặc no-show
type InventoryReverser struct {
	inventory repository.InventoryRepository
}

func NewInventoryReverser(inventory repository.InventoryRepository) *InventoryReverser {
	return &InventoryReverser{inventory: inventory}
}

// WithTx chạy Release trong transaction của caller
func (r *InventoryReverser) WithTx(tx *gorm.DB) *InventoryReverser {
	return &InventoryReverser{inventory: r.inventory.WithTx(tx)}
}

// Release giảm booked_units của mọi đêm [checkIn, checkOut) cho từng room line,
// không xuống dưới 0
func (r *InventoryReverser) Release(ctx context.Context, res *models.Reservation) error {
	nights, err := utils.NightList(res.CheckIn, res.CheckOut)
	if err != nil {
		return fmt.Errorf("reservation %s: %w", res.ID, err)
	}
	for _, room := range res.Rooms {
		if err := r.inventory.Release(ctx, res.PropertyID, room.RoomTypeID, nights); err != nil {
			return fmt.Errorf("release %s: %w", room.RoomTypeID, err)
		}
	}
	return nil
}
