package shared

import (
	"math"
	"strings"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a key prefix with its parts, e.g. "receipt:get" + "ABC123".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}
