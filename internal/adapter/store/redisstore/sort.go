package redisstore

import (
	"sort"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
)

func sortByCreation(alerts []domain.Alert) {
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].Handle < alerts[j].Handle
		}
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
}
