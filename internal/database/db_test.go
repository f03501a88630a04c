package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-catalog/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "catalog",
		DBPass: "s3cret",
		DBHost: "db.internal",
		DBPort: "3307",
		DBName: "library",
	}

	mc, err := mysql.ParseDSN(dsn(cfg))
	require.NoError(t, err)

	assert.Equal(t, "catalog", mc.User)
	assert.Equal(t, "s3cret", mc.Passwd)
	assert.Equal(t, "db.internal:3307", mc.Addr)
	assert.Equal(t, "library", mc.DBName)
	assert.True(t, mc.ParseTime)
	assert.Equal(t, "UTC", mc.Loc.String())
	assert.Equal(t, "utf8mb4", mc.Params["charset"])
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "catalog",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "library",
	}

	mc, err := mysql.ParseDSN(dsn(cfg))
	require.NoError(t, err)
	assert.Equal(t, "catalog", mc.User)
	assert.Empty(t, mc.Passwd)
}
