package database

import (
	"path/filepath"
	"testing"

	"minitwit/config"
	"minitwit/models"

	"github.com/stretchr/testify/require"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	req := require.New(t)

	db, err := New(config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "test.db")})
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	req.NoError(db.Migrate())
	for _, table := range []string{"user", "message", "follower"} {
		req.True(db.Migrator().HasTable(table), "missing table %s", table)
	}

	// migrating twice is a no-op
	req.NoError(db.Migrate())

	req.NoError(db.Create(&models.User{Username: "foo", Email: "foo@example.com", PwHash: "x"}).Error)
	req.Error(db.Create(&models.User{Username: "foo", Email: "other@example.com", PwHash: "y"}).Error)
}

func TestMessageAuthorMustExist(t *testing.T) {
	req := require.New(t)

	db, err := New(config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "test.db")})
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	req.NoError(db.Migrate())

	err = db.Create(&models.Message{AuthorID: 42, Text: "orphan", PubDate: 1}).Error
	req.Error(err)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}
