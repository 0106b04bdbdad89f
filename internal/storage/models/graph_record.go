// Package models holds the GORM-mapped row types for internal/storage's
// Postgres implementation. Grounded on the teacher's
// internal/storage/models/{base,transaction}.go field conventions
// (string primary key, indexed lookup column, UTC timestamp).
package models

import "time"

// GraphRecord is one saved GraphData, addressed by an opaque request id and
// indexed by every account address it contains so ListGraphsForAccount can
// find it.
type GraphRecord struct {
	RequestID string    `gorm:"primaryKey;column:request_id"`
	Data      []byte    `gorm:"column:data;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (GraphRecord) TableName() string { return "graph_records" }

// GraphAccountIndex is one (request_id, account) pair, one row per distinct
// address a saved graph touches, letting ListGraphsForAccount query by
// address without scanning every record's JSON body.
type GraphAccountIndex struct {
	RequestID string `gorm:"column:request_id;primaryKey"`
	Account   string `gorm:"column:account;primaryKey;index"`
}

func (GraphAccountIndex) TableName() string { return "graph_account_index" }
