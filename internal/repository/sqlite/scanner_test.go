package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []string
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}
	for i, d := range dest {
		*(d.(*string)) = ts.data[i]
	}
	return nil
}

// TestRows walks a fixed set of rows
type TestRows struct {
	rows [][]string
	pos  int
	err  error
}

func (tr *TestRows) Next() bool {
	if tr.pos >= len(tr.rows) {
		return false
	}
	tr.pos++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return (&TestScanner{data: tr.rows[tr.pos-1]}).Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanEntry(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Entry
		expectError bool
	}{
		{
			name:    "Valid entry",
			scanner: &TestScanner{data: []string{"paper2plan_theme", "dark", "2025-03-10T09:15:30Z"}},
			expected: &Entry{
				Key:       "paper2plan_theme",
				Value:     "dark",
				UpdatedAt: time.Date(2025, 3, 10, 9, 15, 30, 0, time.UTC),
			},
		},
		{
			name:        "Unparsable timestamp",
			scanner:     &TestScanner{data: []string{"k", "v", "yesterday"}},
			expectError: true,
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ScanEntry(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, entry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Key, entry.Key)
			assert.Equal(t, tt.expected.Value, entry.Value)
			assert.True(t, tt.expected.UpdatedAt.Equal(entry.UpdatedAt))
		})
	}
}

func TestScanEntries(t *testing.T) {
	t.Run("should scan all rows", func(t *testing.T) {
		rows := &TestRows{rows: [][]string{
			{"a", "1", "2025-01-01T00:00:00Z"},
			{"b", "2", "2025-01-02T00:00:00Z"},
		}}

		entries, err := ScanEntries(rows)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[1].Key)
	})

	t.Run("should surface iteration errors", func(t *testing.T) {
		_, err := ScanEntries(&TestRows{err: errors.New("cursor closed")})
		assert.Error(t, err)
	})
}
