package postgres

import (
	"context"

	"github.com/flexprice/tuition/internal/domain/enrollment"
	"github.com/flexprice/tuition/internal/domain/grade"
	"github.com/flexprice/tuition/internal/domain/student"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/types"
)

type gradeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewGradeRepository(db *postgres.DB, logger *logger.Logger) grade.Repository {
	return &gradeRepository{db: db, logger: logger}
}

func (r *gradeRepository) Create(ctx context.Context, g *grade.Grade) error {
	if err := g.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO grades (id, name, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :created_at, :updated_at, :created_by, :updated_by)`

	r.logger.Debugw("creating grade", "grade_id", g.ID, "name", g.Name)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, g); err != nil {
		return mapError(err, "grade", g.ID)
	}
	return nil
}

func (r *gradeRepository) Get(ctx context.Context, id string) (*grade.Grade, error) {
	return getByID[grade.Grade](ctx, r.db, "grades", "grade", id)
}

func (r *gradeRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*grade.Grade, error) {
	q := newListQuery("grades", "name ASC", types.QueryFilterOrDefault(filter))
	return selectAll[grade.Grade](ctx, r.db, "grade", q)
}

func (r *gradeRepository) Update(ctx context.Context, g *grade.Grade) error {
	if err := g.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE grades SET
			name = :name,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND deleted_at IS NULL`

	return namedExec(ctx, r.db, "grade", g.ID, query, g)
}

func (r *gradeRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting grade", "grade_id", id)
	return softDelete(ctx, r.db, "grades", "grade", id)
}

func (r *gradeRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "grades", "grade", id)
}

type studentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStudentRepository(db *postgres.DB, logger *logger.Logger) student.Repository {
	return &studentRepository{db: db, logger: logger}
}

func (r *studentRepository) Create(ctx context.Context, st *student.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO students (id, name, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :created_at, :updated_at, :created_by, :updated_by)`

	r.logger.Debugw("creating student", "student_id", st.ID)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, st); err != nil {
		return mapError(err, "student", st.ID)
	}
	return nil
}

func (r *studentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	return getByID[student.Student](ctx, r.db, "students", "student", id)
}

func (r *studentRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*student.Student, error) {
	q := newListQuery("students", "name ASC", types.QueryFilterOrDefault(filter))
	return selectAll[student.Student](ctx, r.db, "student", q)
}

func (r *studentRepository) Update(ctx context.Context, st *student.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE students SET
			name = :name,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND deleted_at IS NULL`

	return namedExec(ctx, r.db, "student", st.ID, query, st)
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting student", "student_id", id)
	return softDelete(ctx, r.db, "students", "student", id)
}

func (r *studentRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "students", "student", id)
}

type enrollmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEnrollmentRepository(db *postgres.DB, logger *logger.Logger) enrollment.Repository {
	return &enrollmentRepository{db: db, logger: logger}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *enrollment.StudentGrade) error {
	if err := e.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO student_grades (
			id, student_id, grade_id, school_year_id, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :student_id, :grade_id, :school_year_id, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("enrolling student",
		"student_id", e.StudentID,
		"grade_id", e.GradeID,
		"school_year_id", e.SchoolYearID)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, e); err != nil {
		return mapError(err, "enrollment", e.ID)
	}
	return nil
}

func (r *enrollmentRepository) Get(ctx context.Context, id string) (*enrollment.StudentGrade, error) {
	return getByID[enrollment.StudentGrade](ctx, r.db, "student_grades", "enrollment", id)
}

func (r *enrollmentRepository) List(ctx context.Context, filter *types.EnrollmentFilter) ([]*enrollment.StudentGrade, error) {
	if filter == nil {
		filter = types.NewEnrollmentFilter()
	}
	q := newListQuery("student_grades", "id ASC", types.QueryFilterOrDefault(filter.QueryFilter)).
		WhereEq("school_year_id", filter.SchoolYearID).
		WhereEq("student_id", filter.StudentID).
		WhereEq("grade_id", filter.GradeID).
		WhereIn("student_id", filter.StudentIDs)
	return selectAll[enrollment.StudentGrade](ctx, r.db, "enrollment", q)
}

func (r *enrollmentRepository) GetByStudentAndYear(ctx context.Context, studentID, schoolYearID string) (*enrollment.StudentGrade, error) {
	var e enrollment.StudentGrade
	query := `
		SELECT * FROM student_grades
		WHERE student_id = $1 AND school_year_id = $2 AND deleted_at IS NULL`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &e, query, studentID, schoolYearID); err != nil {
		return nil, mapError(err, "enrollment", studentID+"/"+schoolYearID)
	}
	return &e, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id string) error {
	return softDelete(ctx, r.db, "student_grades", "enrollment", id)
}

func (r *enrollmentRepository) HardDelete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.db, "student_grades", "enrollment", id)
}
