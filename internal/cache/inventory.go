package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix           = "user:%d"
	CampgroundKeyPrefix     = "campground:%d"
	CampgroundListKeyPrefix = "campgrounds:page:%d:limit:%d"
)

const (
	UserTTL           = 5 * time.Minute
	CampgroundTTL     = 10 * time.Minute
	CampgroundListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func CampgroundKey(campgroundID uint) string {
	return fmt.Sprintf(CampgroundKeyPrefix, campgroundID)
}

func CampgroundListKey(page, limit int) string {
	return fmt.Sprintf(CampgroundListKeyPrefix, page, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateCampground(ctx context.Context, campgroundID uint) {
	Invalidate(ctx, CampgroundKey(campgroundID))
	InvalidateCampgroundLists(ctx)
}

// InvalidateCampgroundLists drops every cached listing page. KEYS is O(N)
// but the list-page keyspace stays small (pages actually requested within
// a 2 minute TTL).
func InvalidateCampgroundLists(ctx context.Context) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, "campgrounds:page:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}
