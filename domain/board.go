package domain

import "sort"

// Zone names used to key durable rows to the physical board section.
const (
	ZoneFront = "front"
	ZoneBack  = "back"
)

// Board holds the in-memory door state: two fixed zones of door -> location
// plus the per-door truck overrides. Doors never join or leave a zone at
// runtime.
//
// Board does no internal locking. Concurrent writes to different doors are
// independent; concurrent writes to the same door are last-write-wins, which
// is accepted for the single-operator board this serves.
type Board struct {
	front     map[int]string
	back      map[int]string
	overrides map[int]string
}

// NewBoard constructs a Board populated with the compiled-in defaults.
func NewBoard() *Board {
	return &Board{
		front:     copyDoors(defaultFront),
		back:      copyDoors(defaultBack),
		overrides: make(map[int]string),
	}
}

// ZoneFor returns the zone a door belongs to.
func ZoneFor(door int) (string, bool) {
	if _, ok := defaultFront[door]; ok {
		return ZoneFront, true
	}
	if _, ok := defaultBack[door]; ok {
		return ZoneBack, true
	}
	return "", false
}

// Location returns the stored location for a door.
func (b *Board) Location(door int) (string, bool) {
	if loc, ok := b.front[door]; ok {
		return loc, true
	}
	loc, ok := b.back[door]
	return loc, ok
}

// Override returns the door's explicit truck override, if set.
func (b *Board) Override(door int) (string, bool) {
	truck, ok := b.overrides[door]
	return truck, ok
}

// Overrides returns a copy of the override map.
func (b *Board) Overrides() map[int]string {
	out := make(map[int]string, len(b.overrides))
	for door, truck := range b.overrides {
		out[door] = truck
	}
	return out
}

// Doors returns every door id on the board, ascending.
func (b *Board) Doors() []int {
	doors := make([]int, 0, len(b.front)+len(b.back))
	for door := range b.front {
		doors = append(doors, door)
	}
	for door := range b.back {
		doors = append(doors, door)
	}
	sort.Ints(doors)
	return doors
}

// Truck resolves the effective truck type for a door's current location.
func (b *Board) Truck(door int) string {
	loc, ok := b.Location(door)
	if !ok {
		return ""
	}
	return ResolveTruck(loc, b.overrides[door])
}

// FrontRows returns the front zone ordered by door, trucks resolved.
func (b *Board) FrontRows() []BoardRow {
	return b.rows(b.front)
}

// BackRows returns the back zone ordered by door, trucks resolved.
func (b *Board) BackRows() []BoardRow {
	return b.rows(b.back)
}

func (b *Board) rows(zone map[int]string) []BoardRow {
	rows := make([]BoardRow, 0, len(zone))
	for door, loc := range zone {
		rows = append(rows, BoardRow{Door: door, Location: loc, Truck: ResolveTruck(loc, b.overrides[door])})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Door < rows[j].Door })
	return rows
}

// SetLocation canonicalizes rawLocation and writes it to the door's zone.
// A blank location clears any override, since a blank door cannot carry a
// forced truck type. The returned state is what must be persisted; ok is
// false for doors not on the board, in which case nothing changes.
func (b *Board) SetLocation(door int, rawLocation string) (DoorState, bool) {
	zone := b.zoneOf(door)
	if zone == nil {
		return DoorState{}, false
	}
	loc := CanonicalizeLocation(rawLocation)
	zone[door] = loc
	if IsBlank(loc) {
		delete(b.overrides, door)
	}
	return DoorState{Door: door, Location: loc, Truck: b.overrides[door]}, true
}

// SetOverride applies a truck override for a door. "AUTO" or any value
// outside the truck-type enum clears the override, as does any attempt on a
// blank door. The returned state is what must be persisted; ok is false only
// for doors not on the board.
func (b *Board) SetOverride(door int, rawTruck string) (DoorState, bool) {
	loc, ok := b.Location(door)
	if !ok {
		return DoorState{}, false
	}
	truck := Normalize(rawTruck)
	if IsBlank(loc) || truck == "AUTO" || !validTruck(truck) {
		delete(b.overrides, door)
		return DoorState{Door: door, Location: loc}, true
	}
	b.overrides[door] = truck
	return DoorState{Door: door, Location: loc, Truck: truck}, true
}

// Apply overwrites a door's state from a persisted row during startup load.
// Rows for unknown doors are ignored; an empty location falls back to the
// blank marker, and an empty truck clears any override.
func (b *Board) Apply(st DoorState) {
	zone := b.zoneOf(st.Door)
	if zone == nil {
		return
	}
	loc := st.Location
	if loc == "" {
		loc = Blank
	}
	zone[st.Door] = loc
	truck := Normalize(st.Truck)
	if truck != "" {
		b.overrides[st.Door] = truck
	} else {
		delete(b.overrides, st.Door)
	}
}

func (b *Board) zoneOf(door int) map[int]string {
	if _, ok := b.front[door]; ok {
		return b.front
	}
	if _, ok := b.back[door]; ok {
		return b.back
	}
	return nil
}

func validTruck(truck string) bool {
	for _, t := range TruckTypes {
		if t == truck {
			return true
		}
	}
	return false
}
