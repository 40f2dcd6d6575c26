// Package db implements the supplier and dog stores on top of GORM.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	dbmodels "github.com/gartstein/dogs/internal/dogs/db/models"
	e "github.com/gartstein/dogs/internal/dogs/errors"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store is the persistence contract used by the service layer.
type Store interface {
	FindSupplierByName(ctx context.Context, name string) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	CreateDog(ctx context.Context, dog *models.Dog) error
	GetDog(ctx context.Context, id uuid.UUID) (*models.Dog, error)
	ListDogs(ctx context.Context, filter models.DogFilter, page models.PageRequest) (*models.Page[models.Dog], error)
	UpdateDog(ctx context.Context, dog *models.Dog) error
	SoftDeleteDog(ctx context.Context, id uuid.UUID) error
	WithTransaction(ctx context.Context, fn func(tx Store) error) error
}

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the SQLite database file, ":memory:" for an in-memory database.
	Path           string
	ConnectRetries uint64
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		path := c.Path
		if path == "" {
			path = ":memory:"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func NewRepository(cfg *Config, logger *zap.Logger) (*Repository, error) {
	logger = logger.Named("db")

	var db *gorm.DB
	connect := func() error {
		dialector, err := cfg.dialector()
		if err != nil {
			return backoff.Permanent(err)
		}
		db, err = gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger: gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			}),
		})
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("backoff", next))
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.ConnectRetries)
	if err := backoff.RetryNotify(connect, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows one writer; an in-memory database also lives and dies
		// with its connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&dbmodels.Supplier{}, &dbmodels.Dog{}, &dbmodels.KennelCharacteristic{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) FindSupplierByName(ctx context.Context, name string) (*models.Supplier, error) {
	var row dbmodels.Supplier
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&row)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return toSupplierModel(row), nil
}

func (r *Repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	row := toSupplierRow(supplier)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translateError(err)
	}
	supplier.CreatedAt = row.CreatedAt
	return nil
}

func (r *Repository) CreateDog(ctx context.Context, dog *models.Dog) error {
	row := toDogRow(dog)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		return insertCharacteristics(tx, dog.ID, dog.KennellingCharacteristics)
	})
	if err != nil {
		return translateError(err)
	}
	dog.CreatedAt = row.CreatedAt
	dog.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *Repository) GetDog(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	var row dbmodels.Dog
	result := preloadDog(r.db.WithContext(ctx)).First(&row, "id = ?", id)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return toDogModel(row), nil
}

// ListDogs returns one page of dogs that are not soft-deleted, narrowed by filter.
func (r *Repository) ListDogs(ctx context.Context, filter models.DogFilter, page models.PageRequest) (*models.Page[models.Dog], error) {
	q := r.db.WithContext(ctx).Model(&dbmodels.Dog{}).Where("dogs.deleted = ?", false)
	if filter.Field == models.FilterSupplier {
		q = q.Joins("JOIN suppliers ON suppliers.id = dogs.supplier_id")
	}
	if column, ok := filterColumns[filter.Field]; ok {
		q = q.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", containsPattern(filter.Value))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, translateError(err)
	}

	find := preloadDog(q)
	for _, order := range orderColumns(page.Sort) {
		find = find.Order(order)
	}

	var rows []dbmodels.Dog
	if err := find.Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	dogs := make([]models.Dog, 0, len(rows))
	for _, row := range rows {
		dogs = append(dogs, *toDogModel(row))
	}
	return models.NewPage(dogs, page, total), nil
}

// UpdateDog overwrites every mutable column of the dog and replaces its
// kennelling characteristics. The supplier and the deleted flag are never
// touched.
func (r *Repository) UpdateDog(ctx context.Context, dog *models.Dog) error {
	row := toDogRow(dog)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&dbmodels.Dog{}).
			Where("id = ?", dog.ID).
			Select("*").
			Omit("ID", "SupplierID", "Deleted", "CreatedAt", clause.Associations).
			Updates(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}

		if err := tx.Where("dog_id = ?", dog.ID).Delete(&dbmodels.KennelCharacteristic{}).Error; err != nil {
			return err
		}
		return insertCharacteristics(tx, dog.ID, dog.KennellingCharacteristics)
	})
	return translateError(err)
}

func (r *Repository) SoftDeleteDog(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&dbmodels.Dog{}).
		Where("id = ?", id).
		Update("deleted", true)

	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

var filterColumns = map[models.FilterField]string{
	models.FilterName:     "dogs.name",
	models.FilterBreed:    "dogs.breed",
	models.FilterSupplier: "suppliers.name",
}

var sortColumns = map[string]string{
	"name":          "name",
	"breed":         "breed",
	"badgeId":       "badge_id",
	"currentStatus": "current_status",
	"birthDate":     "birth_date",
	"dateAcquired":  "date_acquired",
	"createdAt":     "created_at",
}

// orderColumns maps requested sort fields to columns, dropping unknown ones,
// and always ends on the primary key so paging is stable.
func orderColumns(sort []models.SortOrder) []clause.OrderByColumn {
	orders := make([]clause.OrderByColumn, 0, len(sort)+2)
	for _, s := range sort {
		column, ok := sortColumns[s.Field]
		if !ok {
			continue
		}
		orders = append(orders, clause.OrderByColumn{
			Column: clause.Column{Table: "dogs", Name: column},
			Desc:   s.Desc,
		})
	}
	if len(orders) == 0 {
		orders = append(orders, clause.OrderByColumn{Column: clause.Column{Table: "dogs", Name: "created_at"}})
	}
	return append(orders, clause.OrderByColumn{Column: clause.Column{Table: "dogs", Name: "id"}})
}

// containsPattern builds a LIKE pattern matching value anywhere, with LIKE
// wildcards in value escaped. Case folding is left to the database LOWER so
// the column and the pattern are folded alike.
func containsPattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
	return "%" + escaped + "%"
}

func preloadDog(db *gorm.DB) *gorm.DB {
	return db.Preload("Supplier").
		Preload("KennellingCharacteristics", func(db *gorm.DB) *gorm.DB {
			return db.Order("characteristic")
		})
}

func insertCharacteristics(tx *gorm.DB, dogID uuid.UUID, values []string) error {
	rows := toCharacteristicRows(dogID, values)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return e.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", e.ErrConstraintViolation, err)
	default:
		return err
	}
}
