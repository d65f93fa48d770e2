package postgres

const insertUserSQL = `
INSERT INTO users (name, email)
VALUES ($1, $2)
RETURNING id, name, email;
`

const getUserSQL = `
SELECT id, name, email
FROM users
WHERE id = $1
LIMIT 1;
`

const createUsersTableSQL = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
