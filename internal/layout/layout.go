// Package layout assigns possibly-overlapping appointments of one day into
// side-by-side columns so they render without visual collision.
package layout

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInterval is returned when an interval has end <= start.
var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is one appointment's half-open [StartMinutes, EndMinutes) window
// in local day time.
type Interval struct {
	ID           string
	StartMinutes int
	EndMinutes   int
}

// ColumnAssignment is the layout result for one interval. Rendering every
// interval at column ColumnIndex out of TotalColumns equal-width lanes
// produces no overlap.
type ColumnAssignment struct {
	ID           string
	ColumnIndex  int
	TotalColumns int
	StartMinutes int
	EndMinutes   int
}

type eventKind int

const (
	eventEnd eventKind = iota // end before start at equal timestamps
	eventStart
)

type event struct {
	time int
	kind eventKind
	item int // index into items
}

// Assign computes a column assignment per interval using a greedy sweep:
// events sorted by time with end events first at ties (half-open semantics,
// so an interval ending exactly when another begins frees its column), each
// start claiming the lowest free column. TotalColumns is recomputed per
// interval over its own overlap set, so disjoint clusters in the same day
// stay independent.
//
// A malformed interval (end <= start) aborts with ErrInvalidInterval
// wrapping the offending ID.
func Assign(items []Interval) ([]ColumnAssignment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	for _, it := range items {
		if it.EndMinutes <= it.StartMinutes {
			return nil, fmt.Errorf("interval %q [%d, %d): %w", it.ID, it.StartMinutes, it.EndMinutes, ErrInvalidInterval)
		}
	}

	events := make([]event, 0, len(items)*2)
	for i, it := range items {
		events = append(events,
			event{time: it.StartMinutes, kind: eventStart, item: i},
			event{time: it.EndMinutes, kind: eventEnd, item: i},
		)
	}
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].time != events[b].time {
			return events[a].time < events[b].time
		}
		if events[a].kind != events[b].kind {
			return events[a].kind < events[b].kind
		}
		// Ties within a kind resolve by start-time order.
		return items[events[a].item].StartMinutes < items[events[b].item].StartMinutes
	})

	columns := make([]int, len(items)) // column index per item
	var occupied []bool
	for _, ev := range events {
		switch ev.kind {
		case eventStart:
			col := -1
			for c, busy := range occupied {
				if !busy {
					col = c
					break
				}
			}
			if col < 0 {
				col = len(occupied)
				occupied = append(occupied, false)
			}
			occupied[col] = true
			columns[ev.item] = col
		case eventEnd:
			occupied[columns[ev.item]] = false
		}
	}

	result := make([]ColumnAssignment, len(items))
	for i, it := range items {
		total := columns[i]
		for j, other := range items {
			if j == i {
				continue
			}
			if it.StartMinutes < other.EndMinutes && other.StartMinutes < it.EndMinutes {
				if columns[j] > total {
					total = columns[j]
				}
			}
		}
		result[i] = ColumnAssignment{
			ID:           it.ID,
			ColumnIndex:  columns[i],
			TotalColumns: total + 1,
			StartMinutes: it.StartMinutes,
			EndMinutes:   it.EndMinutes,
		}
	}
	return result, nil
}
