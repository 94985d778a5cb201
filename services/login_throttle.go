package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"flip-menu/db"
	"flip-menu/docstore"

	"github.com/spf13/cast"
)

const (
	ThrottleSurfaceWeb         = "web"
	ThrottleSurfaceBot         = "bot"
	ThrottleCooldownCapSeconds = 30
)

// throttleID is the document id of a client's throttle record. One id per
// client keeps concurrent first failures on a single document.
func throttleID(surface, client string) string {
	return surface + ":" + strings.ReplaceAll(client, "/", "_")
}

func findThrottle(ctx context.Context, id string) (*docstore.Snapshot, error) {
	snap, err := db.Docs.Get(ctx, ColLoginThrottle, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoginThrottleWaitSeconds returns how many seconds the client must wait
// before trying again (0 if no cooldown).
func LoginThrottleWaitSeconds(ctx context.Context, surface, client string) (int, error) {
	snap, err := findThrottle(ctx, throttleID(surface, client))
	if err != nil || snap == nil {
		return 0, err
	}
	v := snap.Data["cooldownUntil"]
	if v == nil {
		return 0, nil
	}
	until, err := cast.ToTimeE(v)
	if err != nil {
		return 0, nil
	}
	if n := now(); n.Before(until) {
		return int(until.Sub(n).Seconds()) + 1, nil // round up
	}
	return 0, nil
}

// RecordLoginFailed increments failCount and sets
// cooldownUntil = now + min(30, 2^failCount) seconds.
func RecordLoginFailed(ctx context.Context, surface, client string) error {
	id := throttleID(surface, client)
	for range 3 {
		snap, err := findThrottle(ctx, id)
		if err != nil {
			return err
		}
		n := now()
		if snap != nil {
			fails := cast.ToInt(snap.Data["failCount"]) + 1
			return db.Docs.Update(ctx, ColLoginThrottle, id, docstore.Doc{
				"failCount":     int64(fails),
				"lastFailedAt":  n,
				"cooldownUntil": n.Add(time.Duration(CooldownSecondsForFailCount(fails)) * time.Second),
				"updatedAt":     n,
			})
		}
		err = db.Docs.Insert(ctx, ColLoginThrottle, id, docstore.Doc{
			"surface":       surface,
			"client":        client,
			"failCount":     int64(1),
			"lastFailedAt":  n,
			"cooldownUntil": n.Add(time.Duration(CooldownSecondsForFailCount(1)) * time.Second),
			"updatedAt":     n,
		})
		if !errors.Is(err, docstore.ErrExists) {
			return err
		}
		// Another request created the record first; count on top of it.
	}
	return fmt.Errorf("record login failure %s: record keeps changing", id)
}

// RecordLoginSuccess resets failCount and cooldownUntil for the client.
func RecordLoginSuccess(ctx context.Context, surface, client string) error {
	snap, err := findThrottle(ctx, throttleID(surface, client))
	if err != nil || snap == nil {
		return err
	}
	return db.Docs.Update(ctx, ColLoginThrottle, snap.ID, docstore.Doc{
		"failCount":     int64(0),
		"lastFailedAt":  nil,
		"cooldownUntil": nil,
		"updatedAt":     now(),
	})
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	s := int(math.Pow(2, float64(failCount)))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return s
}
