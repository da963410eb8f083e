package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type uniqueThing struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Code string `gorm:"type:varchar(32);uniqueIndex;not null"`
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestNew_SQLiteReportsUniqueViolation(t *testing.T) {
	req := require.New(t)

	db, err := New(&Config{
		Driver:       "sqlite",
		FilePath:     filepath.Join(t.TempDir(), "unique.db"),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	req.NoError(err)
	t.Cleanup(func() { _ = Close(db) })

	req.NoError(Ping(context.Background(), db))
	req.NoError(AutoMigrate(db, &uniqueThing{}))

	req.NoError(db.Create(&uniqueThing{Code: "a"}).Error)
	err = db.Create(&uniqueThing{Code: "a"}).Error
	req.Error(err)
	req.True(IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "users_wallet_address_key"`), true},
		{"mysql", errors.New("Error 1062: Duplicate entry 'x' for key 'users.wallet_address'"), true},
		{"sqlite", errors.New("UNIQUE constraint failed: users.wallet_address"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	req := require.New(t)

	pg := &Config{Driver: "postgres", Host: "db", Port: 5432, User: "amigos", Password: "pw", DBName: "chat", SSLMode: "disable"}
	dsn, err := pg.DSN()
	req.NoError(err)
	req.Equal("host=db port=5432 user=amigos password=pw dbname=chat sslmode=disable TimeZone=UTC", dsn)

	my := &Config{Driver: "mysql", Host: "db", Port: 3306, User: "amigos", Password: "pw", DBName: "chat"}
	dsn, err = my.DSN()
	req.NoError(err)
	req.Equal("amigos:pw@tcp(db:3306)/chat?charset=utf8mb4&parseTime=True&loc=UTC", dsn)

	lite := &Config{Driver: "sqlite", FilePath: "amigos.db"}
	dsn, err = lite.DSN()
	req.NoError(err)
	req.Equal("amigos.db", dsn)
}
