package postgres

import (
	"testing"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&cfg.PGDBCfg{
		Host:     "db",
		Port:     "5432",
		User:     "nest",
		Password: "secret",
		DBName:   "nest_store",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=nest password=secret dbname=nest_store sslmode=disable", dsn)
}
