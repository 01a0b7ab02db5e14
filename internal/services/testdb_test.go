package services

import (
	"path/filepath"
	"testing"

	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func newTestDb(t *testing.T) *repositories.DbContext {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	assert.NoError(t, dbContext.Migrate())

	t.Cleanup(func() {
		_ = dbContext.Close()
	})
	return dbContext
}
