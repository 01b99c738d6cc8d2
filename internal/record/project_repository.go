package record

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type projectRow struct {
	ID          string        `db:"id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Status      ProjectStatus `db:"status"`
	Link        string        `db:"link"`
	RoadmapDay  sql.NullInt64 `db:"roadmap_day"`
}

func (row projectRow) toProject() Project {
	project := Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Status:      row.Status,
		Link:        row.Link,
	}
	if row.RoadmapDay.Valid {
		day := int(row.RoadmapDay.Int64)
		project.RoadmapDay = &day
	}
	return project
}

const projectColumns = "id, name, description, status, link, roadmap_day"

// DBProjectRepository implements ProjectRepository using sqlx.
type DBProjectRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewDBProjectRepository creates a new DBProjectRepository.
func NewDBProjectRepository(db *sqlx.DB) *DBProjectRepository {
	return &DBProjectRepository{db: db, dialect: DialectOf(db.DriverName())}
}

// FindAll returns roadmap projects ordered by day, followed by free-form projects by name.
func (r *DBProjectRepository) FindAll(ctx context.Context) ([]Project, error) {
	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+projectColumns+" FROM projects ORDER BY roadmap_day IS NULL, roadmap_day, name"); err != nil {
		return nil, storageError("db.SelectContext(projects)", err)
	}
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = row.toProject()
	}
	return projects, nil
}

// FindByID returns a project, or nil if not found.
func (r *DBProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	return r.findOne(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
}

// FindByRoadmapDay returns the persisted project of a catalog day, or nil if the user never touched it.
func (r *DBProjectRepository) FindByRoadmapDay(ctx context.Context, day int) (*Project, error) {
	return r.findOne(ctx, "SELECT "+projectColumns+" FROM projects WHERE roadmap_day = ?", day)
}

func (r *DBProjectRepository) findOne(ctx context.Context, query string, arg interface{}) (*Project, error) {
	var row projectRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("db.GetContext(project)", err)
	}
	project := row.toProject()
	return &project, nil
}

// Upsert creates or replaces a project by ID. Derived statuses are rejected.
func (r *DBProjectRepository) Upsert(ctx context.Context, project *Project) error {
	if !project.Status.IsPersisted() {
		return ErrInvalidStatus
	}

	var roadmapDay sql.NullInt64
	if project.RoadmapDay != nil {
		roadmapDay = sql.NullInt64{Int64: int64(*project.RoadmapDay), Valid: true}
	}
	query := "INSERT INTO projects (" + projectColumns + ") VALUES (?, ?, ?, ?, ?, ?) " +
		r.dialect.upsertSuffix("id", "name", "description", "status", "link", "roadmap_day")
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		project.ID, project.Name, project.Description, string(project.Status), project.Link, roadmapDay); err != nil {
		return storageError("db.ExecContext(upsert project)", err)
	}
	return nil
}
