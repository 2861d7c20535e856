package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

func TestDoorEntityRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		st   domain.DoorState
		zone string
	}{
		{name: "front", st: domain.DoorState{Door: 8, Location: "XMD2", UpdatedAt: "2025-01-01 10:00:00"}, zone: "front"},
		{name: "back", st: domain.DoorState{Door: 139, Location: "HIA1", Truck: "JBHU", UpdatedAt: "2025-01-01 10:05:00"}, zone: "back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := entityFromState(tt.st)
			if ent.PartitionKey != tt.zone {
				t.Fatalf("unexpected partition: %q", ent.PartitionKey)
			}
			if ent.RowKey != strconv.Itoa(tt.st.Door) {
				t.Fatalf("unexpected row key: %q", ent.RowKey)
			}
			if ent.DoorType != edmInt32 {
				t.Fatalf("unexpected door type annotation: %q", ent.DoorType)
			}

			payload, err := json.Marshal(ent)
			if err != nil {
				t.Fatalf("marshal entity: %v", err)
			}
			var decoded doorEntity
			if err := json.Unmarshal(payload, &decoded); err != nil {
				t.Fatalf("unmarshal entity: %v", err)
			}
			if got := stateFromEntity(decoded); got != tt.st {
				t.Fatalf("round trip mismatch: %#v vs %#v", got, tt.st)
			}
		})
	}
}

func TestDoorEntityJSONShape(t *testing.T) {
	payload, err := json.Marshal(entityFromState(domain.DoorState{Door: 122, Location: "ABE8", UpdatedAt: "2025-01-01 07:00:00"}))
	if err != nil {
		t.Fatalf("marshal entity: %v", err)
	}
	for _, want := range []string{
		`"PartitionKey":"back"`,
		`"RowKey":"122"`,
		`"Door":122`,
		`"Door@odata.type":"Edm.Int32"`,
		`"TruckType":""`,
	} {
		if !strings.Contains(string(payload), want) {
			t.Fatalf("expected %s in payload, got %s", want, payload)
		}
	}
}

func TestStateFromServiceEntity(t *testing.T) {
	raw := []byte(`{"PartitionKey":"back","RowKey":"123","Door":123,"Door@odata.type":"Edm.Int32","Location":"XME1","TruckType":"JBHU","UpdatedAt":"2025-01-01 10:00:00"}`)

	var ent doorEntity
	if err := json.Unmarshal(raw, &ent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := domain.DoorState{Door: 123, Location: "XME1", Truck: "JBHU", UpdatedAt: "2025-01-01 10:00:00"}
	if got := stateFromEntity(ent); got != want {
		t.Fatalf("unexpected state: %#v", got)
	}
}
