package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS searches (
	id           TEXT PRIMARY KEY,
	folder       TEXT NOT NULL,
	pattern      TEXT NOT NULL,
	regex        INTEGER NOT NULL DEFAULT 0 CHECK(regex IN (0, 1)),
	reverse      INTEGER NOT NULL DEFAULT 0 CHECK(reverse IN (0, 1)),
	window_start DATETIME NOT NULL,
	window_end   DATETIME,
	result_count INTEGER NOT NULL DEFAULT 0,
	ran_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_searches_ran_at ON searches(ran_at);
CREATE INDEX IF NOT EXISTS idx_searches_folder ON searches(folder);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
