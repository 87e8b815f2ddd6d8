// Package overlap defines the clustering contract the timetable engine
// consumes, plus the default sequential resolver.
//
// A resolver decides how concurrent items within one day should share
// horizontal space. The engine never inspects the algorithm, only the
// shape of its output: prepared events carrying the original item, a
// stable key, and an interval floor extended to the minimum duration.
// Resolvers must preserve item identity and must not reorder items in a
// way that breaks day-window clamping.
package overlap

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Prepared is one item annotated with resolver metadata for a single day.
//
// Start and End are the item's true interval; MinEnd is End extended to at
// least the configured minimum duration. Geometry uses MinEnd as the
// rendered floor while day-span counts keep using the true interval.
//
// Cluster, Slot and ClusterSize describe the event's position among
// concurrent items. The default geometry step places cards by sequential
// index rather than by slot, so this metadata is advisory; render
// callbacks may use it to distinguish concurrent items visually.
type Prepared[T any] struct {
	Key  string
	Item T

	Start  time.Time
	End    time.Time
	MinEnd time.Time

	Cluster     int
	Slot        int
	ClusterSize int
}

// Resolver is the clustering contract. Resolve is invoked once per day
// window with that day's item subset, in window order.
type Resolver[T any] interface {
	Resolve(day time.Time, items []T, minMinutes float64, start, end func(T) time.Time) []Prepared[T]
}

// keyNamespace seeds deterministic event keys. Fixed so identical inputs
// always produce identical keys across runs.
var keyNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Sequential is the default resolver. It keeps items in order of
// appearance, groups transitively overlapping intervals into clusters,
// and assigns each event its slot within the cluster.
type Sequential[T any] struct{}

// NewSequential returns the default resolver.
func NewSequential[T any]() Sequential[T] { return Sequential[T]{} }

// Resolve implements Resolver. Keys are UUIDv5 values derived from the day
// and the event's index, so a given input list always resolves to the same
// keys.
func (Sequential[T]) Resolve(day time.Time, items []T, minMinutes float64, start, end func(T) time.Time) []Prepared[T] {
	if len(items) == 0 {
		return nil
	}

	minDur := time.Duration(minMinutes * float64(time.Minute))
	out := make([]Prepared[T], len(items))
	for i, item := range items {
		s, e := start(item), end(item)
		minEnd := s.Add(minDur)
		if e.After(minEnd) {
			minEnd = e
		}
		out[i] = Prepared[T]{
			Key:    uuid.NewSHA1(keyNamespace, []byte(fmt.Sprintf("%s#%d", day.Format("2006-01-02"), i))).String(),
			Item:   item,
			Start:  s,
			End:    e,
			MinEnd: minEnd,
		}
	}

	assignClusters(out)
	return out
}

// assignClusters walks the prepared events in order and groups transitively
// overlapping intervals. Two events share a cluster when their effective
// intervals (with the minimum-duration floor applied) touch or intersect.
// The single-pass sweep assumes events arrive ordered by start; an item
// that starts before an earlier item can land in a separate cluster. The
// metadata is advisory, so that is tolerated rather than re-sorted.
func assignClusters[T any](events []Prepared[T]) {
	cluster := -1
	var clusterEnd time.Time
	var members []int

	flush := func() {
		for slot, idx := range members {
			events[idx].Cluster = cluster
			events[idx].Slot = slot
			events[idx].ClusterSize = len(members)
		}
		members = members[:0]
	}

	for i := range events {
		ev := &events[i]
		if len(members) == 0 || ev.Start.After(clusterEnd) {
			flush()
			cluster++
			clusterEnd = ev.MinEnd
		} else if ev.MinEnd.After(clusterEnd) {
			clusterEnd = ev.MinEnd
		}
		members = append(members, i)
	}
	flush()
}
