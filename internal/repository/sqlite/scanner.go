package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEntry scans a single entry from a database row
func ScanEntry(scanner Scanner) (*Entry, error) {
	entry := &Entry{}
	var updatedAt string

	if err := scanner.Scan(&entry.Key, &entry.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt = t

	return entry, nil
}

// ScanEntries scans multiple entries from database rows
func ScanEntries(rows Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		entry, err := ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
