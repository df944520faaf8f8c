package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"churchfinder_backend/internals/features/churches/events/model"
)

// Church deletes are soft, so the cascade FK never clears event rows. The
// public join has to filter the deleted churches out itself or their events
// would keep surfacing under the dead church's name.
func TestApprovedChurchesJoinExcludesDeletedChurches(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	stmt := db.Model(&model.ChurchEventModel{}).
		Scopes(approvedChurches).
		Find(&[]model.ChurchEventModel{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "JOIN churches ON churches.church_id = events.event_church_id")
	assert.Contains(t, sql, "churches.church_deleted_at IS NULL")
	assert.Contains(t, sql, "churches.church_status")
}
