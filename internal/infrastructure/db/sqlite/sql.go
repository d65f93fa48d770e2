package sqlite

const insertUserSQL = `
INSERT INTO users (name, email)
VALUES (?, ?)
RETURNING id, name, email;
`

const getUserSQL = `
SELECT id, name, email
FROM users
WHERE id = ?
LIMIT 1;
`

const createUsersTableSQL = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
