package cache

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/Veraticus/larder/internal/model"
)

// Fingerprint summarizes inventory state as seen at now. Item order does not
// matter. Any change to an item's identity, quantity, unit, expiry or
// modification time changes it, and so does an item crossing into the
// near-expiry window, since that alters scores while the inventory stays put.
func Fingerprint(items []model.InventoryItem, now time.Time, window time.Duration) model.Fingerprint {
	sorted := make([]model.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	d := xxhash.New()
	buf := make([]byte, 0, 128)
	for _, item := range sorted {
		buf = buf[:0]
		buf = append(buf, item.ID...)
		buf = append(buf, 0)
		if item.CanonicalID != nil {
			buf = append(buf, *item.CanonicalID...)
		}
		buf = append(buf, 0)
		buf = strconv.AppendFloat(buf, item.Quantity, 'g', -1, 64)
		buf = append(buf, 0)
		buf = append(buf, item.Unit...)
		buf = append(buf, 0)
		if item.ExpiresAt != nil {
			buf = strconv.AppendInt(buf, item.ExpiresAt.UnixNano(), 10)
		}
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, item.UpdatedAt.UnixNano(), 10)
		buf = append(buf, 0)
		buf = strconv.AppendBool(buf, item.ExpiresWithin(now, window))
		buf = append(buf, '\n')
		_, _ = d.Write(buf)
	}

	return model.Fingerprint(fmt.Sprintf("%016x", d.Sum64()))
}
