// Package postgres implements the store interfaces on PostgreSQL through
// the pgx database/sql driver. It owns the schema, shipped as embedded goose
// migrations, and the mapping between meeting aggregates and table rows.
package postgres
