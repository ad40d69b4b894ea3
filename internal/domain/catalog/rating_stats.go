package catalog

import "math"

// RatingBucket is one row of the per-value GROUP BY over active ratings.
type RatingBucket struct {
	Rating int   `gorm:"column:rating"`
	Count  int64 `gorm:"column:count"`
}

// RatingStats aggregates the active ratings of a course.
type RatingStats struct {
	AverageRating      float64       `json:"average_rating"`
	TotalRatings       int64         `json:"total_ratings"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

// ZeroRatingStats is the empty aggregate, also used as the fallback when aggregation fails.
func ZeroRatingStats() RatingStats {
	dist := make(map[int]int64, MaxRating)
	for v := MinRating; v <= MaxRating; v++ {
		dist[v] = 0
	}
	return RatingStats{RatingDistribution: dist}
}

// BuildRatingStats folds value buckets into stats. Buckets outside 1..5 are ignored so the
// distribution always sums to the total.
func BuildRatingStats(buckets []RatingBucket) RatingStats {
	stats := ZeroRatingStats()
	var sum int64
	for _, b := range buckets {
		if !ValidRating(b.Rating) || b.Count <= 0 {
			continue
		}
		stats.RatingDistribution[b.Rating] += b.Count
		stats.TotalRatings += b.Count
		sum += int64(b.Rating) * b.Count
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = roundTo2(float64(sum) / float64(stats.TotalRatings))
	}
	return stats
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
