package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for stored comparisons.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogComparisonSaved logs a comparison write.
func (al *AuditLogger) LogComparisonSaved(comparisonID, name string, scenarios int, createdAt time.Time) {
	al.WithFields(logrus.Fields{
		"comparison_id": comparisonID,
		"name":          name,
		"scenarios":     scenarios,
		"created_at":    createdAt.Unix(),
	}).Info("Comparison saved")
}

// LogComparisonDeleted logs a comparison removal.
func (al *AuditLogger) LogComparisonDeleted(comparisonID string) {
	al.WithFields(logrus.Fields{
		"comparison_id": comparisonID,
	}).Info("Comparison deleted")
}

// LogComparisonsCleared logs a full wipe of the store.
func (al *AuditLogger) LogComparisonsCleared(removed int) {
	al.WithFields(logrus.Fields{
		"removed": removed,
	}).Warn("All comparisons cleared")
}

// LogStoreFailure logs a failed store operation.
func (al *AuditLogger) LogStoreFailure(operation, comparisonID string, err error) {
	al.WithFields(logrus.Fields{
		"operation":     operation,
		"comparison_id": comparisonID,
	}).WithError(err).Error("Comparison store operation failed")
}
