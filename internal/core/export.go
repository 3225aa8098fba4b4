package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"innkeep/internal/blob"
)

// LedgerExport is the serialised form of an exported reservation ledger.
type LedgerExport struct {
	ExportedAt   time.Time     `json:"exported_at"`
	Rooms        []Room        `json:"rooms"`
	Reservations []Reservation `json:"reservations"`
}

// ExportLedger writes a timestamped JSON snapshot of the catalog and
// reservation ledger to the blob store and returns the stored blob's
// metadata. Keys are unique per export; existing blobs are never
// overwritten.
func (s *Service) ExportLedger(ctx context.Context, store blob.Store) (blob.Info, error) {
	ctx, done := s.begin(ctx, "export_ledger")
	var retErr error
	defer func() { done(retErr) }()

	export := LedgerExport{
		ExportedAt:   s.nowFn(),
		Rooms:        s.store.ListRooms(),
		Reservations: s.store.ListReservations(),
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		retErr = fmt.Errorf("encode ledger: %w", err)
		return blob.Info{}, retErr
	}

	key := fmt.Sprintf("ledger/%s.json", export.ExportedAt.UTC().Format("20060102T150405.000000000Z"))
	info, err := store.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"reservations": strconv.Itoa(len(export.Reservations)),
		},
	})
	if err != nil {
		retErr = fmt.Errorf("store ledger: %w", err)
		return blob.Info{}, retErr
	}
	s.logger.Infof("exported ledger to %s (%d reservations)", info.Key, len(export.Reservations))
	return info, nil
}
