// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/animetrack/internal/platform/migration"
)

/*
TestToPgx5DSN verifies the scheme rewrite expected by the golang-migrate pgx/v5 driver.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/anime", "pgx5://u:p@db:5432/anime"},
		{"postgresql_scheme", "postgresql://u:p@db/anime?sslmode=disable", "pgx5://u:p@db/anime?sslmode=disable"},
		{"already_pgx5", "pgx5://db/anime", "pgx5://db/anime"},
		{"keyword_dsn", "host=db user=u dbname=anime", "host=db user=u dbname=anime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.dsn))
		})
	}
}
