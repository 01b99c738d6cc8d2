package database

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytrack/internal/record"
)

//go:embed schema/schema.sql
var schemaFS embed.FS

type schemaParams struct {
	DateType string
}

// SchemaStatements renders the CREATE TABLE statements for a dialect.
func SchemaStatements(dialect record.Dialect) ([]string, error) {
	tmpl, err := template.ParseFS(schemaFS, "schema/schema.sql")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS() > %w", err)
	}

	params := schemaParams{DateType: "DATE"}
	if dialect == record.DialectSQLite {
		params.DateType = "TEXT"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return nil, fmt.Errorf("tmpl.Execute() > %w", err)
	}

	var statements []string
	for _, statement := range strings.Split(buf.String(), ";") {
		statement = strings.TrimSpace(statement)
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements, nil
}

// Migrate creates any missing table. Existing tables and rows are left alone.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements, err := SchemaStatements(record.DialectOf(db.DriverName()))
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w: %w", firstLine(statement), record.ErrStorageFailure, err)
		}
	}
	return nil
}

func firstLine(statement string) string {
	line, _, _ := strings.Cut(statement, "\n")
	return strings.TrimSuffix(strings.TrimSpace(line), " (")
}
