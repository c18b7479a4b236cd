package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/p-miano/portfolio-api/config"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// Database bundles the repositories that share one gorm handle. A Database
// built inside Transaction is the unit of work for a single request.
type Database struct {
	db                  *gorm.DB
	userRepo            *UserRepo
	categoryRepo        *CategoryRepo
	technologyGroupRepo *TechnologyGroupRepo
	technologyRepo      *TechnologyRepo
	projectRepo         *ProjectRepo
	associations        map[string]*AssociationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	kinds := []models.AssociationKind{
		models.CategoryAssociation,
		models.TechnologyAssociation,
		models.TechnologyGroupAssociation,
	}
	associations := make(map[string]*AssociationRepo, len(kinds))
	for _, kind := range kinds {
		associations[kind.Table] = NewAssociationRepo(db, kind)
	}

	return Database{
		db:                  db,
		userRepo:            NewUserRepo(db),
		categoryRepo:        NewCategoryRepo(db),
		technologyGroupRepo: NewTechnologyGroupRepo(db),
		technologyRepo:      NewTechnologyRepo(db),
		projectRepo:         NewProjectRepo(db),
		associations:        associations,
	}
}

// Open connects to the configured driver. SQLite is limited to a single
// connection so writers never contend for the file lock.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBType {
	case config.DBTypePostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DBDSN,
			PreferSimpleProtocol: true,
		})
	case config.DBTypeSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DBDSN))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         NewGormLogger(log.Logger, 200*time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.DBType == config.DBTypeSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if len(cfg.ReplicaDSNs) > 0 {
		if cfg.DBType != config.DBTypePostgres {
			return nil, errors.New("read replicas are only supported for postgres")
		}
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaDSNs))
		for _, dsn := range cfg.ReplicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("error testing database connection: %w", err)
	}

	return db, nil
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates every table.
func (d Database) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(models.AllModels()...)
}

// Transaction runs fn against a Database bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Calling
// Transaction on a Database that is already transactional opens a savepoint.
// Inside fn only uow may touch the database. Errors from fn are returned
// unchanged; a failure to begin or commit is a transaction failed error.
func (d Database) Transaction(ctx context.Context, fn func(uow Database) error) error {
	var fnErr error
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(New(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return errs.NewTransactionFailedError("unit of work", err)
	}
	return err
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GormDB exposes the underlying handle for tooling such as model generation.
func (d Database) GormDB() *gorm.DB {
	return d.db
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TechnologyGroupRepo() *TechnologyGroupRepo {
	return d.technologyGroupRepo
}

func (d Database) TechnologyRepo() *TechnologyRepo {
	return d.technologyRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

// Associations returns the ownership repository for kind.
func (d Database) Associations(kind models.AssociationKind) *AssociationRepo {
	if repo, ok := d.associations[kind.Table]; ok {
		return repo
	}
	return NewAssociationRepo(d.db, kind)
}
