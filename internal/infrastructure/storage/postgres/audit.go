package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/audit"
)

// CompressionAlgo specifies the compression algorithm used for a row.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditRow is the persisted shape of an audit entry.
type AuditRow struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	OwnerID           id.ID           `db:"owner_id"`
	Action            string          `db:"action"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// Compile-time check that AuditStore implements audit.Recorder.
var _ audit.Recorder = (*AuditStore)(nil)

// AuditStore persists mutation records in sys_audit. Payloads above the
// compression threshold are stored zstd-compressed. The trail is
// write-only; it has no read surface.
type AuditStore struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	compressThreshold int // bytes
}

// NewAuditStore creates a new audit store.
func NewAuditStore(txManager *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &AuditStore{
		txManager:         txManager,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record persists a single audit entry.
func (s *AuditStore) Record(ctx context.Context, change audit.Change) error {
	payload, err := json.Marshal(change.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	row := AuditRow{
		ID:              id.New(),
		EntityType:      change.EntityType,
		EntityID:        change.EntityID,
		OwnerID:         change.OwnerID,
		Action:          string(change.Action),
		Payload:         payload,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(row.Payload) > s.compressThreshold {
		row.PayloadCompressed = s.encoder.EncodeAll(row.Payload, nil)
		row.Payload = nil
		row.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, owner_id, action,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		row.ID, row.EntityType, row.EntityID, row.OwnerID, row.Action,
		row.Payload, row.PayloadCompressed, row.CompressionAlgo, row.CreatedAt,
	)
	return err
}
