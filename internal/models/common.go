// Package models holds the database row shapes. They mirror the domain
// types but use db tags and nullable wrappers where the schema allows NULL.
package models

import "time"

// AuditFields holds the standard audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
