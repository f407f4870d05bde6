package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/workout"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	resultsCacheExpireSeconds = 60 * 60
	defaultResultsCacheSize   = 1024 * 1024
)

// ResultsCache memoizes previous-results lookups. Keys carry the owning
// user and a process-wide events version, so any events mutation makes
// old entries unreachable and they age out on their own. One cache can be
// shared by all sessions.
type ResultsCache struct {
	cache *freecache.Cache
}

func NewResultsCache(sizeBytes int) *ResultsCache {
	if sizeBytes <= 0 {
		sizeBytes = defaultResultsCacheSize
	}
	return &ResultsCache{
		cache: freecache.NewCache(sizeBytes),
	}
}

func resultsCacheKey(userID string, version uint64, exerciseID string, pivot time.Time) []byte {
	return []byte(fmt.Sprintf("%s|%d|%s|%s", userID, version, exerciseID, pivot.Format(calendar.DayLayout)))
}

func (c *ResultsCache) get(key []byte) ([]workout.Set, bool) {
	raw, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var sets []workout.Set
	if err := json.Unmarshal(raw, &sets); err != nil {
		log.Errorf("results cache: unmarshal %s: %s", key, err)
		return nil, false
	}
	return sets, true
}

func (c *ResultsCache) set(key []byte, sets []workout.Set) {
	raw, err := json.Marshal(sets)
	if err != nil {
		log.Errorf("results cache: marshal %s: %s", key, err)
		return
	}
	if err := c.cache.Set(key, raw, resultsCacheExpireSeconds); err != nil {
		log.Debugf("results cache: set %s: %s", key, err)
	}
}

func (c *ResultsCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
