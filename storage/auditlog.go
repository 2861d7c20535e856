package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

// AuditLog is the append-only CSV trail of every mutation. The file is
// created lazily with a header line and never rewritten in place.
type AuditLog struct {
	path string
}

// NewAuditLog returns an AuditLog writing to path.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path}
}

// Record appends one immutable entry for a mutation.
func (l *AuditLog) Record(_ context.Context, st domain.DoorState) error {
	_, statErr := os.Stat(l.path)
	writeHeader := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(snapshotHeader); err != nil {
			return fmt.Errorf("writing audit log header: %w", err)
		}
	}
	if err := w.Write([]string{strconv.Itoa(st.Door), st.Location, st.Truck, st.UpdatedAt}); err != nil {
		return fmt.Errorf("writing audit log record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing audit log: %w", err)
	}
	return nil
}

// Load replays the log in file order and keeps the last record per door.
// A missing file means no history; the header and malformed lines are
// skipped rather than failing the replay.
func (l *AuditLog) Load(_ context.Context) ([]domain.DoorState, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	latest := make(map[int]domain.DoorState)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading audit log: %w", err)
		}
		if len(record) < 4 {
			continue
		}
		door, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		latest[door] = domain.DoorState{Door: door, Location: record[1], Truck: record[2], UpdatedAt: record[3]}
	}

	states := make([]domain.DoorState, 0, len(latest))
	for _, st := range latest {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Door < states[j].Door })
	return states, nil
}

// Upsert is a no-op: the log has no per-door row to replace.
func (l *AuditLog) Upsert(context.Context, domain.DoorState) error {
	return nil
}

// Export returns the log file verbatim, lazily creating a header-only file
// when none exists yet.
func (l *AuditLog) Export(_ context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		data = encodeSnapshot(nil)
		if werr := os.WriteFile(l.path, data, 0o644); werr != nil {
			return domain.Snapshot{}, fmt.Errorf("creating audit log: %w", werr)
		}
		err = nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("reading audit log: %w", err)
	}
	return domain.Snapshot{Data: data, Filename: filepath.Base(l.path), ContentType: snapshotMIME}, nil
}
