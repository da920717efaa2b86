package ledger

import (
	"database/sql"
	"time"
)

// Recent returns the N most recent deletion outcomes, newest first.
func (l *DeletionLedger) Recent(limit int) ([]Record, error) {
	query := `
	SELECT id, timestamp, status, path, file_name, size, error_message
	FROM async_deletions
	ORDER BY timestamp DESC
	LIMIT ?
	`
	return l.queryRecords(query, limit)
}

// ByStatus returns outcomes filtered by status, newest first.
func (l *DeletionLedger) ByStatus(status string, limit int) ([]Record, error) {
	query := `
	SELECT id, timestamp, status, path, file_name, size, error_message
	FROM async_deletions
	WHERE status = ?
	ORDER BY timestamp DESC
	LIMIT ?
	`
	return l.queryRecords(query, status, limit)
}

// TotalBytesFreed returns total bytes reclaimed since the given time.
func (l *DeletionLedger) TotalBytesFreed(since time.Time) (int64, error) {
	var total int64
	err := l.db.QueryRow(`
	SELECT COALESCE(SUM(size), 0)
	FROM async_deletions
	WHERE status = ? AND timestamp >= ?
	`, StatusDeleted, since).Scan(&total)
	return total, err
}

// CountByStatus returns outcome counts grouped by status.
func (l *DeletionLedger) CountByStatus() (map[string]int, error) {
	rows, err := l.db.Query(`
	SELECT status, COUNT(*)
	FROM async_deletions
	GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (l *DeletionLedger) queryRecords(query string, args ...interface{}) ([]Record, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var errMsg sql.NullString
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Status, &r.Path, &r.FileName, &r.Size, &errMsg); err != nil {
			return nil, err
		}
		if errMsg.Valid {
			r.ErrorMessage = errMsg.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
