package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Model generation usage:

Set GENERATE_MODELS=true and start the binary. The schema is migrated, a
column mismatch report is logged, typed query helpers are written to
./generated and the process exits.

The report lists, per table, database columns that no field of the Go
model maps to. Example:

	table=projects missing=[legacy_slug]
	totalMismatches=1
*/

func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	if outPath == "" {
		outPath = "./generated"
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)

	log.Info().Msg("migrating models before generation")
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	LogColumnMismatchReport(report)

	g.Execute()
	log.Info().Str("outPath", outPath).Msg("model generation complete")
	return nil
}

// ColumnMismatchReport maps each existing table to the columns that no model
// field accounts for. Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	migrator := db.Migrator()

	for _, model := range AllModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table

		if !migrator.HasTable(tableName) {
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, stmt.Schema.DBNames)
		sort.Strings(mismatches)
		report[tableName] = mismatches
	}

	return report, nil
}

func LogColumnMismatchReport(report map[string][]string) {
	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		missing := report[table]
		if len(missing) == 0 {
			log.Info().Str("table", table).Msg("all columns are accounted for in the model")
			continue
		}
		total += len(missing)
		log.Warn().Str("table", table).Strs("missing", missing).Msg("columns not accounted for in model")
	}
	log.Info().Int("totalMismatches", total).Msg("column mismatch report complete")
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
