package model

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/ariebrainware/medical-forum/config"
	"gorm.io/gorm"
)

// Table names of the forum schema.
const (
	UsersTable        = "users"
	UsersProfileTable = "users_profile"
	MessagesTable     = "messages"
	DiagnosisTable    = "diagnosis"
)

// ForumModels lists the models managed by the Engine, parents first.
var ForumModels = []interface{}{
	&User{},
	&UserProfile{},
	&Message{},
	&Diagnosis{},
	&AuditLog{},
}

// Children first, so deleting rows never violates a foreign key.
var clearOrder = []string{DiagnosisTable, MessagesTable, UsersProfileTable, UsersTable, "audit_logs"}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Column describes a table column as reported by PRAGMA table_info.
type Column struct {
	Name       string `gorm:"column:name"`
	Type       string `gorm:"column:type"`
	NotNull    int    `gorm:"column:notnull"`
	PrimaryKey int    `gorm:"column:pk"`
}

// ForeignKey is one row of PRAGMA foreign_key_list: the referenced table and
// the local and remote column.
type ForeignKey struct {
	Table string `gorm:"column:table"`
	From  string `gorm:"column:from"`
	To    string `gorm:"column:to"`
}

// Engine owns the forum database: it opens the connection and creates,
// populates, clears and removes the schema.
type Engine struct {
	path string

	mu sync.Mutex
	db *gorm.DB
}

// NewEngine returns an engine for the SQLite database file at path. Use
// config.MemoryPath for a private in-memory database. The connection is
// opened lazily.
func NewEngine(path string) *Engine {
	return &Engine{path: path}
}

// NewEngineFromDB wraps an already opened database, e.g. a MySQL connection.
// RemoveDatabase drops the tables instead of deleting a file.
func NewEngineFromDB(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Path returns the database file path, empty for wrapped connections.
func (e *Engine) Path() string {
	return e.path
}

func (e *Engine) ownsFile() bool {
	return e.path != "" && e.path != config.MemoryPath
}

// DB returns the connection, opening it on first use.
func (e *Engine) DB() (*gorm.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db != nil {
		return e.db, nil
	}
	db, err := config.OpenSQLite(e.path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", e.path, err)
	}
	e.db = db
	return db, nil
}

// Close releases the connection. Closing an in-memory database discards it.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked()
}

func (e *Engine) closeLocked() error {
	if e.db == nil {
		return nil
	}
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	e.db = nil
	return sqlDB.Close()
}

// RemoveDatabase deletes the database file. For in-memory or wrapped
// databases the tables are dropped instead.
func (e *Engine) RemoveDatabase() error {
	if !e.ownsFile() {
		db, err := e.DB()
		if err != nil {
			return err
		}
		for i := len(ForumModels) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(ForumModels[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.closeLocked(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	if err := os.Remove(e.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove database file: %w", err)
	}
	return nil
}

// CreateTables creates the schema when it does not exist yet.
func (e *Engine) CreateTables() error {
	db, err := e.DB()
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(ForumModels...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// PopulateTables loads the fixture users, profiles, messages and diagnoses.
// Either all rows are inserted or none.
func (e *Engine) PopulateTables() error {
	db, err := e.DB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		users := fixtureUsers()
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("populate users: %w", err)
		}
		profiles := fixtureProfiles()
		if err := tx.Create(&profiles).Error; err != nil {
			return fmt.Errorf("populate user profiles: %w", err)
		}
		messages := fixtureMessages()
		if err := tx.Create(&messages).Error; err != nil {
			return fmt.Errorf("populate messages: %w", err)
		}
		diagnoses := fixtureDiagnoses()
		if err := tx.Create(&diagnoses).Error; err != nil {
			return fmt.Errorf("populate diagnoses: %w", err)
		}
		return nil
	})
}

// Clear removes every row from every table, keeping the schema.
func (e *Engine) Clear() error {
	db, err := e.DB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range clearOrder {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// CountRows returns the number of rows in table.
func (e *Engine) CountRows(table string) (int64, error) {
	if !identifierPattern.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	db, err := e.DB()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// TableColumns returns the columns of table in declaration order.
func (e *Engine) TableColumns(table string) ([]Column, error) {
	var cols []Column
	if err := e.pragma("table_info", table, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// ForeignKeys returns the foreign keys declared on table.
func (e *Engine) ForeignKeys(table string) ([]ForeignKey, error) {
	var fks []ForeignKey
	if err := e.pragma("foreign_key_list", table, &fks); err != nil {
		return nil, err
	}
	return fks, nil
}

func (e *Engine) pragma(name, table string, dest interface{}) error {
	if !identifierPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	db, err := e.DB()
	if err != nil {
		return err
	}
	if err := db.Raw(fmt.Sprintf("PRAGMA %s(%s)", name, table)).Scan(dest).Error; err != nil {
		return fmt.Errorf("pragma %s(%s): %w", name, table, err)
	}
	return nil
}
