package dto

import (
	"time"

	"github.com/comerzia/comerzia_backend/internal/core/domain"
)

// AuditEntryResponse defines the data returned for one audit trail entry.
type AuditEntryResponse struct {
	EntryID      string    `json:"entryID"`
	Timestamp    time.Time `json:"timestamp"`
	UserID       string    `json:"userID,omitempty"`
	TableName    string    `json:"tableName"`
	Operation    string    `json:"operation"`
	RecordIDs    []string  `json:"recordIDs,omitempty"`
	QueryText    string    `json:"queryText,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	DurationMS   *int64    `json:"durationMs,omitempty"`
}

// ToListAuditEntryResponse converts audit entries to response DTOs.
func ToListAuditEntryResponse(entries []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditEntryResponse{
			EntryID:      e.EntryID,
			Timestamp:    e.Timestamp,
			UserID:       e.UserID,
			TableName:    e.TableName,
			Operation:    string(e.Operation),
			RecordIDs:    e.RecordIDs,
			QueryText:    e.QueryText,
			ErrorMessage: e.ErrorMessage,
			DurationMS:   e.DurationMS,
		}
	}
	return res
}
