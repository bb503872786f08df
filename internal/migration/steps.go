package migration

// steps is the full migration history. Names sort lexicographically;
// never reorder or rename an applied step.
var steps = []Step{
	{
		Name: "001_create_users",
		Postgres: `
			CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				username VARCHAR(100) UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		Name: "002_create_generated_names",
		Postgres: `
			CREATE TABLE IF NOT EXISTS generated_names (
				id BIGSERIAL PRIMARY KEY,
				session_id VARCHAR(64) NOT NULL DEFAULT '',
				user_id BIGINT REFERENCES users(id),
				surname VARCHAR(10) NOT NULL,
				gender VARCHAR(10) NOT NULL DEFAULT 'neutral',
				birth_date TIMESTAMP WITH TIME ZONE,
				preferences TEXT NOT NULL DEFAULT '[]',
				sources TEXT NOT NULL DEFAULT '[]',
				fixed_char VARCHAR(4),
				fixed_position VARCHAR(10),
				full_name VARCHAR(20) NOT NULL,
				first_name VARCHAR(10) NOT NULL,
				score_total INTEGER NOT NULL DEFAULT 0,
				score_wuxing INTEGER NOT NULL DEFAULT 0,
				score_yinlu INTEGER NOT NULL DEFAULT 0,
				score_zixing INTEGER NOT NULL DEFAULT 0,
				score_yuyi INTEGER NOT NULL DEFAULT 0,
				grade VARCHAR(2) NOT NULL DEFAULT 'D',
				score_breakdown TEXT NOT NULL DEFAULT '{}',
				source VARCHAR(20) NOT NULL,
				source_detail TEXT NOT NULL DEFAULT '',
				is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
				notes TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		SQLite: `
			CREATE TABLE IF NOT EXISTS generated_names (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id TEXT NOT NULL DEFAULT '',
				user_id INTEGER REFERENCES users(id),
				surname TEXT NOT NULL,
				gender TEXT NOT NULL DEFAULT 'neutral',
				birth_date TIMESTAMP,
				preferences TEXT NOT NULL DEFAULT '[]',
				sources TEXT NOT NULL DEFAULT '[]',
				fixed_char TEXT,
				fixed_position TEXT,
				full_name TEXT NOT NULL,
				first_name TEXT NOT NULL,
				score_total INTEGER NOT NULL DEFAULT 0,
				score_wuxing INTEGER NOT NULL DEFAULT 0,
				score_yinlu INTEGER NOT NULL DEFAULT 0,
				score_zixing INTEGER NOT NULL DEFAULT 0,
				score_yuyi INTEGER NOT NULL DEFAULT 0,
				grade TEXT NOT NULL DEFAULT 'D',
				score_breakdown TEXT NOT NULL DEFAULT '{}',
				source TEXT NOT NULL,
				source_detail TEXT NOT NULL DEFAULT '',
				is_favorite BOOLEAN NOT NULL DEFAULT 0,
				notes TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		Name: "003_create_name_indexes",
		Postgres: `
			CREATE INDEX IF NOT EXISTS idx_names_session_id ON generated_names(session_id);
			CREATE INDEX IF NOT EXISTS idx_names_user_id ON generated_names(user_id);
			CREATE INDEX IF NOT EXISTS idx_names_logical_key ON generated_names(surname, first_name);
			CREATE INDEX IF NOT EXISTS idx_names_created_at ON generated_names(created_at DESC)`,
		SQLite: `
			CREATE INDEX IF NOT EXISTS idx_names_session_id ON generated_names(session_id);
			CREATE INDEX IF NOT EXISTS idx_names_user_id ON generated_names(user_id);
			CREATE INDEX IF NOT EXISTS idx_names_logical_key ON generated_names(surname, first_name);
			CREATE INDEX IF NOT EXISTS idx_names_created_at ON generated_names(created_at DESC)`,
	},
}
