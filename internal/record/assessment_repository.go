package record

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type assessmentRow struct {
	Month      string `db:"assessment_month"`
	Reflection string `db:"reflection"`
	Rating     int    `db:"rating"`
}

// DBAssessmentRepository implements AssessmentRepository using sqlx.
type DBAssessmentRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewDBAssessmentRepository creates a new DBAssessmentRepository.
func NewDBAssessmentRepository(db *sqlx.DB) *DBAssessmentRepository {
	return &DBAssessmentRepository{db: db, dialect: DialectOf(db.DriverName())}
}

// FindAll returns every assessment, newest month first.
func (r *DBAssessmentRepository) FindAll(ctx context.Context) ([]MonthlyAssessment, error) {
	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT assessment_month, reflection, rating FROM monthly_assessments ORDER BY assessment_month DESC"); err != nil {
		return nil, storageError("db.SelectContext(monthly_assessments)", err)
	}
	assessments := make([]MonthlyAssessment, len(rows))
	for i, row := range rows {
		assessments[i] = MonthlyAssessment(row)
	}
	return assessments, nil
}

// Upsert creates or replaces the assessment of a month.
func (r *DBAssessmentRepository) Upsert(ctx context.Context, assessment *MonthlyAssessment) error {
	query := "INSERT INTO monthly_assessments (assessment_month, reflection, rating) VALUES (?, ?, ?) " +
		r.dialect.upsertSuffix("assessment_month", "reflection", "rating")
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		assessment.Month, assessment.Reflection, assessment.Rating); err != nil {
		return storageError("db.ExecContext(upsert monthly_assessment)", err)
	}
	return nil
}
