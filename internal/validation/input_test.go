package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cityvoice/cityvoice-backend/internal/models"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ivan@example.com"))
	assert.NoError(t, ValidateEmail("Ivan.Petrov+city@mail.ru"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("не-почта"))
	assert.Error(t, ValidateEmail("ivan@"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("ivan@localhost"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password123"))

	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ivan_petrov"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("1ivan"))
	assert.Error(t, ValidateUsername("иван"))
}

func TestValidateReportTitle(t *testing.T) {
	assert.NoError(t, ValidateReportTitle("Яма на дороге"))

	assert.Error(t, ValidateReportTitle(""))
	assert.Error(t, ValidateReportTitle("  "))
	assert.Error(t, ValidateReportTitle("Ям"))
}

func TestValidateCategory(t *testing.T) {
	for category := range models.ValidCategories {
		assert.NoError(t, ValidateCategory(category))
	}

	assert.Error(t, ValidateCategory(""))
	assert.Error(t, ValidateCategory("cat7"))
	assert.Error(t, ValidateCategory("дороги"))
}

func TestValidateReportStatus(t *testing.T) {
	assert.NoError(t, ValidateReportStatus(models.ReportStatusOpen))
	assert.NoError(t, ValidateReportStatus(models.ReportStatusInProgress))
	assert.NoError(t, ValidateReportStatus(models.ReportStatusResolved))

	assert.Error(t, ValidateReportStatus(""))
	assert.Error(t, ValidateReportStatus("closed"))
}

func TestValidateCommentText(t *testing.T) {
	assert.NoError(t, ValidateCommentText("Подтверждаю"))

	assert.Error(t, ValidateCommentText(""))
	assert.Error(t, ValidateCommentText("   "))
}

func TestValidateReportDate(t *testing.T) {
	assert.NoError(t, ValidateReportDate(time.Now()))
	assert.NoError(t, ValidateReportDate(time.Now().Add(-30*24*time.Hour)))
	assert.NoError(t, ValidateReportDate(time.Now().Add(time.Hour)))

	assert.Error(t, ValidateReportDate(time.Now().Add(48*time.Hour)))
}
