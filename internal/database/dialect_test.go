package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT phone FROM players",
			expected: "SELECT phone FROM players",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM players WHERE phone = ?",
			expected: "SELECT * FROM players WHERE phone = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "UPDATE players SET points = ?, lives = ?, current_question = ? WHERE phone = ?",
			expected: "UPDATE players SET points = $1, lives = $2, current_question = $3 WHERE phone = $4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rewritePlaceholdersToNumbered(tt.query)
			if result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "SELECT * FROM players WHERE phone = ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrite changed query: %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("mysql rewrite changed query: %q", got)
	}
	if got := NewPostgresDialect().RewriteQuery(query); got != "SELECT * FROM players WHERE phone = $1" {
		t.Errorf("postgres rewrite = %q", got)
	}
}

func TestDialectDriverNames(t *testing.T) {
	if got := NewSQLiteDialect().DriverName(); got != "sqlite3" {
		t.Errorf("sqlite driver = %q", got)
	}
	if got := NewMySQLDialect().DriverName(); got != "mysql" {
		t.Errorf("mysql driver = %q", got)
	}
	if got := NewPostgresDialect().DriverName(); got != "postgres" {
		t.Errorf("postgres driver = %q", got)
	}
}
