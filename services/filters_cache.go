package services

import (
	"context"
	"time"

	"staydesk/constants"
	"staydesk/dto"

	"github.com/redis/go-redis/v9"
)

const lastSearchTTL = 30 * time.Minute

func lastSearchKey(sessionID, slug string) string {
	return constants.GuestSearchPrefix + slug + ":" + sessionID
}

// SaveLastSearch lưu tìm kiếm gần nhất của guest theo session
func SaveLastSearch(ctx context.Context, rdb *redis.Client, sessionID, slug string, search *dto.GuestSearch) error {
	if rdb == nil || sessionID == "" {
		return nil
	}
	return SetToRedis(ctx, rdb, lastSearchKey(sessionID, slug), search, lastSearchTTL)
}

// GetLastSearch trả về nil nếu session chưa có tìm kiếm
func GetLastSearch(ctx context.Context, rdb *redis.Client, sessionID, slug string) (*dto.GuestSearch, error) {
	if rdb == nil || sessionID == "" {
		return nil, nil
	}
	var search dto.GuestSearch
	found, err := GetFromRedis(ctx, rdb, lastSearchKey(sessionID, slug), &search)
	if err != nil || !found {
		return nil, err
	}
	return &search, nil
}

func ClearLastSearch(ctx context.Context, rdb *redis.Client, sessionID, slug string) error {
	if rdb == nil || sessionID == "" {
		return nil
	}
	return DeleteFromRedis(ctx, rdb, lastSearchKey(sessionID, slug))
}

// MergeSearch điền các field guest bỏ trống từ tìm kiếm cũ
func MergeSearch(old, new *dto.GuestSearch) *dto.GuestSearch {
	if old == nil {
		return new
	}
	// đổi ngày thì phải chọn lại phòng
	datesChanged := (new.CheckIn != "" && new.CheckIn != old.CheckIn) ||
		(new.CheckOut != "" && new.CheckOut != old.CheckOut)
	if !datesChanged {
		new.RoomTypeID = orString(new.RoomTypeID, old.RoomTypeID)
	}
	new.CheckIn = orString(new.CheckIn, old.CheckIn)
	new.CheckOut = orString(new.CheckOut, old.CheckOut)
	new.Adults = orIntPointer(new.Adults, old.Adults)
	new.Children = orIntPointer(new.Children, old.Children)
	return new
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orIntPointer(newVal, oldVal *int) *int {
	if newVal != nil {
		return newVal
	}
	return oldVal
}
