// Package db はGORMによるデータベース接続、モデル定義、ストアエラーの分類を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// サポートするドライバー名
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

const (
	// connectTimeout は起動時にDB接続をリトライし続ける最大時間です。
	connectTimeout = 60 * time.Second
	// retryInterval は接続リトライの間隔です。
	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL のインスタンス接続名（設定時はUnixソケット接続）
	SQLitePath   string
	Migrate      bool
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       strings.ToLower(os.Getenv("DB_DRIVER")),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   os.Getenv("DB_SQLITE_PATH"),
		Migrate:      os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./sightings.db"
	}
	return cfg
}

// BuildDSN はドライバーに応じたDSN文字列を生成します。
// InstanceName が設定されている場合はHost/PortよりもCloud SQLのUnixソケットが優先されます。
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverMySQL:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	case DriverSQLite:
		return sqliteDSN(cfg.SQLitePath)
	default:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			host, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		if cfg.InstanceName == "" && cfg.Port != "" {
			dsn += " port=" + cfg.Port
		}
		return dsn
	}
}

// sqliteDSN はSQLiteのパスに外部キー制約を有効化するパラメータを付与します。
// SQLiteは接続ごとに PRAGMA foreign_keys を有効にしないとカスケード削除が動作しません。
func sqliteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// NewGormConfig はアプリケーション共通のGORM設定を返します。
// TranslateError によりドライバー固有の一意制約・外部キー違反が gorm.ErrDuplicatedKey /
// gorm.ErrForeignKeyViolated に変換されます。
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewOpener は指定ドライバー用のOpenerを返します。
func NewOpener(driver string) (Opener, error) {
	var dialector func(dsn string) gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open
	case DriverMySQL:
		dialector = gmysql.Open
	case DriverSQLite:
		dialector = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialector(dsn), NewGormConfig())
	}, nil
}

// ConnectWithRetry は timeout に達するまで retryInterval 間隔で接続を試行します。
// コンテナ起動直後などDBの準備が整っていない場合に備えたものです。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従ってデータベースへ接続し、必要に応じてスキーマを同期します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	if cfg.Driver == DriverSQLite {
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, migrateIfRequested(db, cfg)
	}

	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, open)
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "driver", cfg.Driver, "host", cfg.Host, "name", cfg.Name)
	return db, migrateIfRequested(db, cfg)
}

// OpenSQLite はSQLiteデータベースを外部キー制約有効で開きます。
// ":memory:" の場合は接続ごとに別DBとなるため、接続数を1に制限します。
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func migrateIfRequested(db *gorm.DB, cfg Config) error {
	if !cfg.Migrate {
		return nil
	}
	if err := AutoMigrate(db); err != nil {
		return errors.Join(errors.New("failed to migrate"), err)
	}
	return nil
}
