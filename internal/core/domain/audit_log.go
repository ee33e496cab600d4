package domain

import "time"

// AuditOperation labels the kind of data access recorded in the audit trail.
type AuditOperation string

const (
	OpSelect AuditOperation = "SELECT"
	OpInsert AuditOperation = "INSERT"
	OpUpdate AuditOperation = "UPDATE"
	OpDelete AuditOperation = "DELETE"
	OpLogin  AuditOperation = "LOGIN"
	OpError  AuditOperation = "ERROR"
)

// AuditEntry is one append-only audit trail record. Audit writes are
// best-effort: a failed audit insert never fails the originating operation.
type AuditEntry struct {
	EntryID      string         `json:"entryID"`
	Timestamp    time.Time      `json:"timestamp"`
	UserID       string         `json:"userID,omitempty"`
	TableName    string         `json:"tableName"`
	Operation    AuditOperation `json:"operation"`
	RecordIDs    []string       `json:"recordIDs,omitempty"`
	QueryText    string         `json:"queryText,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	DurationMS   *int64         `json:"durationMs,omitempty"`
}

// AuditLogLevel controls which outcomes of a data-access call are recorded.
// Hot read paths run at LogNone; mutations default to LogCritical.
type AuditLogLevel string

const (
	LogNone     AuditLogLevel = "none"     // never record
	LogError    AuditLogLevel = "error"    // record failures only
	LogCritical AuditLogLevel = "critical" // record failures and successes of critical ops
	LogAll      AuditLogLevel = "all"      // record everything
)

// RecordsFailure reports whether a failed operation should be recorded.
func (l AuditLogLevel) RecordsFailure() bool {
	return l == LogError || l == LogCritical || l == LogAll
}

// RecordsSuccess reports whether a successful operation should be recorded.
func (l AuditLogLevel) RecordsSuccess() bool {
	return l == LogCritical || l == LogAll
}
