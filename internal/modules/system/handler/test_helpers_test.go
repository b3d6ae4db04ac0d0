package handler

import (
	"testing"

	modulerepo "momnt-server/internal/modules/system/repo"
	systemservice "momnt-server/internal/modules/system/service"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/testutils"

	"gorm.io/gorm"
)

var testHandler *Handler

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	appService := platformservice.NewAppService(nil)
	testHandler = New(systemservice.New(appService, modulerepo.NewSystemRepository(gdb)))
	return gdb
}
