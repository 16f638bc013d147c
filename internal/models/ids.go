package models

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// IDSet returns the ids of sights as a bitmap, together with every id that
// occurs more than once. Ids outside the uint32 range are left out.
func IDSet(sights []*Sight) (*roaring.Bitmap, []int) {
	ids := roaring.New()
	var dups []int
	for _, s := range sights {
		if s.ID < 0 || s.ID > math.MaxUint32 {
			continue
		}
		if !ids.CheckedAdd(uint32(s.ID)) {
			dups = append(dups, s.ID)
		}
	}
	return ids, dups
}
