package services

import (
	"context"
	"os"
	"testing"

	"github.com/p-miano/portfolio-api/config"
	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newTestDatabase(t *testing.T) database.Database {
	t.Helper()
	gormDB, err := database.Open(config.AppConfig{DBType: config.DBTypeSQLite, DBDSN: ":memory:"})
	require.NoError(t, err)
	db := database.New(gormDB)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func addUser(t *testing.T, db database.Database, email string) uint {
	t.Helper()
	user := &models.User{FullName: "Test User", Email: email, PasswordHash: "x", Roles: []string{models.RoleUser}}
	require.NoError(t, db.UserRepo().Add(context.Background(), user))
	return user.ID
}

func categoryOps(name string, misses *int) referenceOps[models.Category] {
	return referenceOps[models.Category]{
		kind: models.CategoryAssociation,
		find: func(ctx context.Context, uow database.Database) (*models.Category, error) {
			if *misses > 0 {
				*misses--
				return nil, nil
			}
			return uow.CategoryRepo().FindByName(ctx, name)
		},
		insert: func(ctx context.Context, uow database.Database) (*models.Category, error) {
			category := &models.Category{Name: name}
			return category, uow.CategoryRepo().Add(ctx, category)
		},
		id: func(c *models.Category) uint { return c.ID },
	}
}

// A concurrent writer inserted the row between our lookup and our insert.
func TestFindOrCreateFallsBackOnUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	userID := addUser(t, db, "late@example.com")

	winner := &models.Category{Name: "Web"}
	require.NoError(t, db.CategoryRepo().Add(ctx, winner))

	misses := 1
	var got *models.Category
	err := db.Transaction(ctx, func(uow database.Database) error {
		var err error
		got, err = findOrCreate(ctx, uow, userID, categoryOps("Web", &misses))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)

	linked, err := db.Associations(models.CategoryAssociation).Exists(ctx, userID, winner.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	all, err := db.CategoryRepo().FindAllForUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFindOrCreateConflictWhenAlreadyLinked(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	userID := addUser(t, db, "twice@example.com")

	misses := 0
	create := func() error {
		return db.Transaction(ctx, func(uow database.Database) error {
			_, err := findOrCreate(ctx, uow, userID, categoryOps("Mobile", &misses))
			return err
		})
	}

	require.NoError(t, create())
	err := create()
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestRequireLinked(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	owner := addUser(t, db, "owner@example.com")
	stranger := addUser(t, db, "stranger@example.com")

	category, err := NewCategoryService(db).Create(ctx, owner, NameInput{Name: "desktop"})
	require.NoError(t, err)

	assert.NoError(t, requireLinked(ctx, db, models.CategoryAssociation, owner, category.ID, true))
	assert.True(t, errs.IsForbidden(requireLinked(ctx, db, models.CategoryAssociation, stranger, category.ID, true)))
	assert.True(t, errs.IsNotFound(requireLinked(ctx, db, models.CategoryAssociation, owner, 999, false)))
}

func TestProjectCreateRollsBackOnBadTechnology(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	svcs := New(db, nil)
	userID := addUser(t, db, "maker@example.com")

	category, err := svcs.Categories.Create(ctx, userID, NameInput{Name: "web"})
	require.NoError(t, err)

	_, err = svcs.Projects.Create(ctx, userID, ProjectInput{
		Title:         "Site",
		Description:   "desc",
		Difficulty:    "Beginner",
		CategoryID:    category.ID,
		TechnologyIDs: []uint{41, 42},
	})
	require.Error(t, err)
	assert.Equal(t, 400, errs.StatusOf(err))

	projects, err := svcs.Projects.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
