package stats

import (
	"sort"

	"github.com/youthleague/football-system/models"
)

type EventGroupRow struct {
	EventID      int     `json:"event_id"`
	EventName    string  `json:"event_name"`
	SubEventID   *int    `json:"sub_event_id,omitempty"`
	SubEventName *string `json:"sub_event_name,omitempty"`
	Count        int     `json:"count"`

	Events []*models.MatchEvent `json:"events"`
}

type eventGroupKey struct {
	eventID    int
	subEventID int
	hasSub     bool
}

// RollupPlayerEvents groups one player's raw match events by event type and
// sub-event type and counts each group. Events without a sub-event form
// their own group per event type, never merged with any sub-event group.
// Display names come from the first event of each group and the Events
// back-references keep encounter order. Groups are ordered by count
// descending; equal counts keep first-occurrence order.
func RollupPlayerEvents(events []*models.MatchEvent) []EventGroupRow {
	index := make(map[eventGroupKey]int, len(events))
	rows := make([]EventGroupRow, 0, len(events))

	for _, event := range events {
		key := eventGroupKey{eventID: event.EventID}
		if event.SubEventID != nil {
			key.subEventID = *event.SubEventID
			key.hasSub = true
		}

		i, seen := index[key]
		if !seen {
			rows = append(rows, EventGroupRow{
				EventID:      event.EventID,
				EventName:    event.EventName,
				SubEventID:   event.SubEventID,
				SubEventName: event.SubEventName,
			})
			i = len(rows) - 1
			index[key] = i
		}

		rows[i].Count++
		rows[i].Events = append(rows[i].Events, event)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	return rows
}
