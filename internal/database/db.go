package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates all application tables if they do not exist yet.
// Statements are idempotent so the server can run them on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36) PRIMARY KEY,
		username      VARCHAR(100) NOT NULL UNIQUE,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name     VARCHAR(255),
		role          VARCHAR(50) NOT NULL DEFAULT 'admin',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		last_login    DATETIME NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    CHAR(36) NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS technicians (
		id           CHAR(36) PRIMARY KEY,
		nfc_card_uid VARCHAR(100) NOT NULL UNIQUE,
		employee_id  VARCHAR(50) NOT NULL UNIQUE,
		first_name   VARCHAR(100) NOT NULL,
		last_name    VARCHAR(100) NOT NULL,
		email        VARCHAR(255),
		phone        VARCHAR(50),
		department   VARCHAR(100),
		status       VARCHAR(50) NOT NULL DEFAULT 'active',
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS toolboxes (
		id                   CHAR(36) PRIMARY KEY,
		name                 VARCHAR(100) NOT NULL UNIQUE,
		zone                 VARCHAR(50),
		location_description VARCHAR(500),
		raspberry_pi_serial  VARCHAR(100) UNIQUE,
		status               VARCHAR(50) NOT NULL DEFAULT 'operational',
		total_items          INT NOT NULL DEFAULT 0,
		image_url            VARCHAR(500),
		created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_toolboxes_zone (zone),
		INDEX idx_toolboxes_status (status)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id               CHAR(36) PRIMARY KEY,
		toolbox_id       CHAR(36) NOT NULL,
		item_name        VARCHAR(255) NOT NULL,
		item_description VARCHAR(500),
		quantity         INT NOT NULL DEFAULT 1,
		status           VARCHAR(50) NOT NULL DEFAULT 'present',
		last_verified    DATETIME NULL,
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_inventory_items_toolbox (toolbox_id),
		CONSTRAINT fk_inventory_items_toolbox FOREIGN KEY (toolbox_id) REFERENCES toolboxes (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS access_logs (
		id                  CHAR(36) PRIMARY KEY,
		toolbox_id          CHAR(36) NOT NULL,
		technician_id       CHAR(36) NOT NULL,
		action_type         VARCHAR(50) NOT NULL,
		timestamp           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		items_before        INT NULL,
		items_after         INT NULL,
		items_missing       INT NOT NULL DEFAULT 0,
		missing_items_list  VARCHAR(1000),
		notes               VARCHAR(1000),
		condition_image_url VARCHAR(500),
		ip_address          VARCHAR(50),
		INDEX idx_access_logs_toolbox (toolbox_id),
		INDEX idx_access_logs_technician (technician_id),
		INDEX idx_access_logs_timestamp (timestamp),
		CONSTRAINT fk_access_logs_toolbox FOREIGN KEY (toolbox_id) REFERENCES toolboxes (id),
		CONSTRAINT fk_access_logs_technician FOREIGN KEY (technician_id) REFERENCES technicians (id)
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id            CHAR(36) PRIMARY KEY,
		toolbox_id    CHAR(36) NOT NULL,
		access_log_id CHAR(36) NULL,
		image_url     VARCHAR(500) NOT NULL,
		image_type    VARCHAR(50),
		file_size     INT,
		content_type  VARCHAR(100),
		uploaded_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_images_toolbox (toolbox_id),
		CONSTRAINT fk_images_toolbox FOREIGN KEY (toolbox_id) REFERENCES toolboxes (id)
	)`,
	`CREATE TABLE IF NOT EXISTS api_request_logs (
		id               CHAR(36) PRIMARY KEY,
		timestamp        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		method           VARCHAR(10) NOT NULL,
		endpoint         VARCHAR(500) NOT NULL,
		status_code      INT,
		response_time_ms INT,
		ip_address       VARCHAR(50),
		user_agent       VARCHAR(500),
		error_message    VARCHAR(1000),
		INDEX idx_api_request_logs_timestamp (timestamp),
		INDEX idx_api_request_logs_endpoint (endpoint(191))
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id          CHAR(36) PRIMARY KEY,
		toolbox_id  CHAR(36) NULL,
		alert_type  VARCHAR(50) NOT NULL,
		severity    VARCHAR(50) NOT NULL DEFAULT 'medium',
		message     VARCHAR(1000) NOT NULL,
		is_resolved TINYINT(1) NOT NULL DEFAULT 0,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		resolved_at DATETIME NULL,
		resolved_by CHAR(36) NULL,
		INDEX idx_alerts_resolved (is_resolved),
		INDEX idx_alerts_created (created_at)
	)`,
}
