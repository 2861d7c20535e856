package domain

import "sort"

// DoorState is the latest recorded state for a single door. It is the payload
// shared by every persistence path: one append-log record, one durable row.
// Truck is empty when the door has no override; UpdatedAt is stamped by the
// persistence layer at write time.
type DoorState struct {
	Door      int    `json:"door"`
	Location  string `json:"location"`
	Truck     string `json:"truck,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// BoardRow is one rendered line of the board: a door, its location, and the
// effective truck type after override/map/default resolution.
type BoardRow struct {
	Door     int    `json:"door"`
	Location string `json:"location"`
	Truck    string `json:"truck"`
}

// Snapshot is a downloadable export artifact.
type Snapshot struct {
	Data        []byte `json:"data"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

func sortStates(states []DoorState) {
	sort.Slice(states, func(i, j int) bool { return states[i].Door < states[j].Door })
}
