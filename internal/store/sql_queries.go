package store

const (
	createUser = `INSERT INTO users (email, name, password_hash, role, email_verified)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, email, name, password_hash, role, email_verified, last_login_at, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, email, name, password_hash, role, email_verified, last_login_at, created_at, updated_at
    FROM users
    WHERE email = $1;`

	updateLastLogin = `UPDATE users
    SET last_login_at = NOW(), updated_at = NOW()
    WHERE user_id = $1;`

	updatePasswordHash = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`
)
