package storage

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

const (
	snapshotFilename = "door_state_snapshot.csv"
	snapshotMIME     = "text/csv"
)

var snapshotHeader = []string{"door", "location", "truck_type", "updated_at"}

// encodeSnapshot serializes door rows as the canonical CSV snapshot: one
// header line, one line per door in the order given.
func encodeSnapshot(rows []domain.DoorState) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(snapshotHeader)
	for _, st := range rows {
		_ = w.Write([]string{strconv.Itoa(st.Door), st.Location, st.Truck, st.UpdatedAt})
	}
	w.Flush()
	return buf.Bytes()
}
