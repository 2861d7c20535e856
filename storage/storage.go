package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

const edmInt32 = "Edm.Int32"

// TableStore keeps one entity per door in an Azure Storage table,
// partitioned by board zone.
type TableStore struct {
	table *aztables.Client
	seed  []domain.DoorState
}

// NewTableStore creates a TableStore from the given connection string.
func NewTableStore(connStr, tableName string, seed []domain.DoorState) (*TableStore, error) {
	tablesClientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &tablesClientOptions)
	if err != nil {
		return nil, err
	}
	return &TableStore{table: svc.NewClient(tableName), seed: seed}, nil
}

type doorEntity struct {
	aztables.Entity
	Door      int    `json:"Door"`
	DoorType  string `json:"Door@odata.type"`
	Location  string `json:"Location"`
	TruckType string `json:"TruckType"`
	UpdatedAt string `json:"UpdatedAt"`
}

func entityFromState(st domain.DoorState) doorEntity {
	zone, _ := domain.ZoneFor(st.Door)
	return doorEntity{
		Entity: aztables.Entity{
			PartitionKey: zone,
			RowKey:       strconv.Itoa(st.Door),
		},
		Door:      st.Door,
		DoorType:  edmInt32,
		Location:  st.Location,
		TruckType: st.Truck,
		UpdatedAt: st.UpdatedAt,
	}
}

func stateFromEntity(ent doorEntity) domain.DoorState {
	return domain.DoorState{
		Door:      ent.Door,
		Location:  ent.Location,
		Truck:     ent.TruckType,
		UpdatedAt: ent.UpdatedAt,
	}
}

// Load ensures the table exists, seeds it only when empty and returns every
// entity. A concurrent starter winning the seed race is tolerated.
func (s *TableStore) Load(ctx context.Context) ([]domain.DoorState, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}
	states, err := s.listStates(ctx)
	if err != nil {
		return nil, err
	}
	if len(states) > 0 {
		return states, nil
	}
	if err := s.seedTable(ctx); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.EntityAlreadyExists) {
			return s.listStates(ctx)
		}
		return nil, err
	}
	return append([]domain.DoorState(nil), s.seed...), nil
}

// Record is a no-op: the row store keeps current state, not history.
func (s *TableStore) Record(context.Context, domain.DoorState) error {
	return nil
}

// Upsert creates or replaces the entity for one door, last write wins.
func (s *TableStore) Upsert(ctx context.Context, st domain.DoorState) error {
	payload, err := json.Marshal(entityFromState(st))
	if err == nil {
		_, err = s.table.UpsertEntity(ctx, payload, nil)
	}
	if err != nil {
		return fmt.Errorf("upserting door %d: %w", st.Door, err)
	}
	return nil
}

// Export renders every entity, ordered by door, as a CSV snapshot.
func (s *TableStore) Export(ctx context.Context) (domain.Snapshot, error) {
	states, err := s.listStates(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{Data: encodeSnapshot(states), Filename: snapshotFilename, ContentType: snapshotMIME}, nil
}

func (s *TableStore) ensureTable(ctx context.Context) error {
	_, err := s.table.CreateTable(ctx, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists) {
			return nil
		}
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// seedTable inserts the default rows, one transaction per partition.
func (s *TableStore) seedTable(ctx context.Context) error {
	actionsByZone := make(map[string][]aztables.TransactionAction)
	for _, st := range s.seed {
		ent := entityFromState(st)
		payload, err := json.Marshal(ent)
		if err != nil {
			return err
		}
		actionsByZone[ent.PartitionKey] = append(actionsByZone[ent.PartitionKey], aztables.TransactionAction{
			ActionType: aztables.TransactionTypeAdd,
			Entity:     payload,
		})
	}
	for _, actions := range actionsByZone {
		if _, err := s.table.SubmitTransaction(ctx, actions, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *TableStore) listStates(ctx context.Context) ([]domain.DoorState, error) {
	pager := s.table.NewListEntitiesPager(nil)
	var states []domain.DoorState
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent doorEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			states = append(states, stateFromEntity(ent))
		}
	}
	// RowKeys sort lexicographically, so "122" lists before "13".
	sort.Slice(states, func(i, j int) bool { return states[i].Door < states[j].Door })
	return states, nil
}
