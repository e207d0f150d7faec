package database

import (
	"context"
	"database/sql"
)

// Schema statements executed at startup. CREATE TABLE IF NOT EXISTS keeps
// them idempotent. The UNIQUE indexes on the email columns are what enforce
// the uniqueness invariant under concurrent writes: the second insert of a
// duplicate fails with MySQL error 1062 and the repositories translate that
// into a conflict.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		name          VARCHAR(255)    NOT NULL,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_registers (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		cedula        VARCHAR(64)     NOT NULL,
		edad          INT             NOT NULL,
		genero        VARCHAR(32)     NOT NULL,
		so            VARCHAR(64)     NOT NULL,
		movilidad     VARCHAR(128)    NOT NULL,
		tiempo_diario VARCHAR(128)    NOT NULL,
		universidad   VARCHAR(255)    NOT NULL,
		carrera       VARCHAR(255)    NOT NULL,
		telefono      VARCHAR(64)     NOT NULL,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_user_registers_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
