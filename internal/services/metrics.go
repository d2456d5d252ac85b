package services

import "github.com/prometheus/client_golang/prometheus"

// categoryNone labels posts created without a category.
const categoryNone = "none"

var (
	// postsCreated counts newly persisted posts by category id. The label set
	// is bounded by the static category set plus "none".
	postsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created, by category.",
		},
		[]string{"category"},
	)

	// postsFlagged counts successful false->true flag transitions.
	postsFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_flagged_total",
			Help: "Total number of posts flagged for moderation.",
		},
	)
)

func init() {
	prometheus.MustRegister(postsCreated, postsFlagged)
}

func categoryLabel(id *string) string {
	if id == nil {
		return categoryNone
	}
	return *id
}
