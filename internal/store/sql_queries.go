package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-repa/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"u.id", "u.email", "u.password_hash", "u.is_active", "u.created_at", "u.last_login"}

const userReturning = "RETURNING id, email, password_hash, is_active, created_at, last_login"

func buildInsertUser(user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns("id", "email", "password_hash", "is_active").
		Values(user.ID, user.Email, user.PasswordHash, user.IsActive).
		Suffix(userReturning).
		ToSql()
}

func buildSelectUser(where sq.Sqlizer) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users u").
		Where(where).
		ToSql()
}

func buildListUsers(limit, offset uint64) (string, []any, error) {
	q := psql.Select(userColumns...).
		From("users u").
		OrderBy("u.created_at", "u.id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q.ToSql()
}

func buildUpdateUser(user models.User) (string, []any, error) {
	return psql.Update("users").
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Where(sq.Eq{"id": user.ID}).
		Suffix(userReturning).
		ToSql()
}

func buildSetUserActive(id string, active bool) (string, []any, error) {
	return psql.Update("users").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildTouchLastLogin(id string, at time.Time) (string, []any, error) {
	return psql.Update("users").
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectUserRoles(userIDs ...string) (string, []any, error) {
	return psql.Select("ur.user_id", "r.id", "r.rol").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where(sq.Eq{"ur.user_id": userIDs}).
		OrderBy("ur.user_id", "r.id").
		ToSql()
}

func buildAssignRoles(userID string, roleIDs ...int64) (string, []any, error) {
	q := psql.Insert("user_roles").Columns("user_id", "role_id")
	for _, roleID := range roleIDs {
		q = q.Values(userID, roleID)
	}
	return q.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

func buildDeleteUserRoles(userID string) (string, []any, error) {
	return psql.Delete("user_roles").Where(sq.Eq{"user_id": userID}).ToSql()
}

const userStateExpr = "CASE WHEN u.is_active THEN 'active' " +
	"WHEN EXISTS (SELECT 1 FROM token_recovery tr WHERE tr.user_id = u.id AND NOT tr.is_active) THEN 'deactivated' " +
	"ELSE 'unverified' END"

func buildCountUsersByState() (string, []any, error) {
	return psql.Select(userStateExpr+" AS state", "COUNT(*)").
		From("users u").
		GroupBy("state").
		ToSql()
}

func buildInsertRole(name string) (string, []any, error) {
	return psql.Insert("roles").
		Columns("rol").
		Values(name).
		Suffix("ON CONFLICT (rol) DO NOTHING").
		ToSql()
}

func buildSelectRole(name string) (string, []any, error) {
	return psql.Select("id", "rol").From("roles").Where(sq.Eq{"rol": name}).ToSql()
}

func buildListRoles() (string, []any, error) {
	return psql.Select("id", "rol").From("roles").OrderBy("id").ToSql()
}

var recoveryTokenColumns = []string{"id", "user_id", "token_payload", "created_at", "expires_at", "is_active"}

func buildInsertRecoveryToken(t models.RecoveryToken) (string, []any, error) {
	return psql.Insert("token_recovery").
		Columns("id", "user_id", "token_payload", "expires_at", "is_active").
		Values(t.ID, t.UserID, t.Token, t.ExpiresAt, t.IsActive).
		Suffix("RETURNING created_at").
		ToSql()
}

func buildSelectActiveRecoveryToken(token string) (string, []any, error) {
	return psql.Select(recoveryTokenColumns...).
		From("token_recovery").
		Where(sq.Eq{"token_payload": token, "is_active": true}).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildDeactivateRecoveryToken(id string) (string, []any, error) {
	return psql.Update("token_recovery").
		Set("is_active", false).
		Where(sq.Eq{"id": id, "is_active": true}).
		ToSql()
}

var trainingColumns = []string{
	"id", "user_id", "course_name", "institution", "certificate_type", "study_level",
	"start_date", "end_date", "duration_hours", "certificate_url", "knowledge_area",
	"description", "grade", "language", "instructor_name", "program_name",
	"country", "city", "province", "notes",
}

func trainingValues(t models.Training) []any {
	return []any{
		t.CourseName, t.Institution, t.CertificateType, t.StudyLevel,
		t.StartDate, t.EndDate, t.DurationHours, t.CertificateURL, t.KnowledgeArea,
		t.Description, t.Grade, t.Language, t.InstructorName, t.ProgramName,
		t.Country, t.City, t.Province, t.Notes,
	}
}

func buildInsertTraining(t models.Training) (string, []any, error) {
	return psql.Insert("trainings").
		Columns(trainingColumns[1:]...).
		Values(append([]any{t.UserID}, trainingValues(t)...)...).
		Suffix("RETURNING id").
		ToSql()
}

// ownerFilter always constrains by owner. An empty userID matches no row.
func ownerFilter(id int64, userID string) sq.Eq {
	return sq.Eq{"id": id, "user_id": userID}
}

func buildSelectTraining(id int64, userID string) (string, []any, error) {
	return psql.Select(trainingColumns...).From("trainings").Where(ownerFilter(id, userID)).ToSql()
}

func buildListTrainings(userID string) (string, []any, error) {
	return psql.Select(trainingColumns...).From("trainings").Where(sq.Eq{"user_id": userID}).OrderBy("id").ToSql()
}

func buildListAllTrainings() (string, []any, error) {
	return psql.Select(trainingColumns...).From("trainings").OrderBy("user_id", "id").ToSql()
}

func buildUpdateTraining(t models.Training) (string, []any, error) {
	values := trainingValues(t)
	q := psql.Update("trainings")
	for i, column := range trainingColumns[2:] {
		q = q.Set(column, values[i])
	}
	return q.Where(ownerFilter(t.ID, t.UserID)).ToSql()
}

func buildDeleteTraining(id int64, userID string) (string, []any, error) {
	return psql.Delete("trainings").Where(ownerFilter(id, userID)).ToSql()
}

var workColumns = []string{"id", "user_id", "title", "production_type", "start_date", "end_date", "description", "portfolio_url"}

func buildInsertWork(w models.Work) (string, []any, error) {
	return psql.Insert("works").
		Columns(workColumns[1:]...).
		Values(w.UserID, w.Title, w.ProductionType, w.StartDate, w.EndDate, w.Description, w.PortfolioURL).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectWork(id int64, userID string) (string, []any, error) {
	return psql.Select(workColumns...).From("works").Where(ownerFilter(id, userID)).ToSql()
}

func buildListWorks(userID string) (string, []any, error) {
	return psql.Select(workColumns...).From("works").Where(sq.Eq{"user_id": userID}).OrderBy("id").ToSql()
}

func buildUpdateWork(w models.Work) (string, []any, error) {
	return psql.Update("works").
		Set("title", w.Title).
		Set("production_type", w.ProductionType).
		Set("start_date", w.StartDate).
		Set("end_date", w.EndDate).
		Set("description", w.Description).
		Set("portfolio_url", w.PortfolioURL).
		Where(ownerFilter(w.ID, w.UserID)).
		ToSql()
}

func buildDeleteWork(id int64, userID string) (string, []any, error) {
	return psql.Delete("works").Where(ownerFilter(id, userID)).ToSql()
}

// workLookupLinks maps a lookup table to its junction table and foreign key.
var workLookupLinks = map[models.WorkLookup]struct{ table, column string }{
	models.WorkLookupRoles: {table: "work_role_links", column: "role_id"},
	models.WorkLookupTasks: {table: "work_task_links", column: "task_id"},
}

func buildEnsureLookup(kind models.WorkLookup, name string) (string, []any, error) {
	if _, ok := workLookupLinks[kind]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownLookup, kind)
	}
	// DO UPDATE makes RETURNING yield the existing row on conflict.
	return psql.Insert(string(kind)).
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
}

func buildListLookup(kind models.WorkLookup) (string, []any, error) {
	if _, ok := workLookupLinks[kind]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownLookup, kind)
	}
	return psql.Select("id", "name").From(string(kind)).OrderBy("name").ToSql()
}

func buildInsertLookupLinks(kind models.WorkLookup, workID int64, ids []int64) (string, []any, error) {
	link, ok := workLookupLinks[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownLookup, kind)
	}
	q := psql.Insert(link.table).Columns("work_id", link.column)
	for _, id := range ids {
		q = q.Values(workID, id)
	}
	return q.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

func buildDeleteLookupLinks(kind models.WorkLookup, workID int64) (string, []any, error) {
	link, ok := workLookupLinks[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownLookup, kind)
	}
	return psql.Delete(link.table).Where(sq.Eq{"work_id": workID}).ToSql()
}

func buildSelectLinkedLookup(kind models.WorkLookup, workIDs ...int64) (string, []any, error) {
	link, ok := workLookupLinks[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownLookup, kind)
	}
	return psql.Select("l.work_id", "t.id", "t.name").
		From(link.table + " l").
		Join(string(kind) + " t ON t.id = l." + link.column).
		Where(sq.Eq{"l.work_id": workIDs}).
		OrderBy("l.work_id", "t.name").
		ToSql()
}

var personColumns = []string{
	"id", "user_email", "first_name", "last_name", "tax_id", "birth_date", "nationality",
	"gender_identity", "ethnicity", "ethnicity_name", "marital_status", "education_level",
	"dependents", "phone", "address_street", "address_number", "address_postal_code",
	"address_city", "address_province", "address_country",
}

func personValues(p models.Person) []any {
	return []any{
		p.UserEmail, p.FirstName, p.LastName, p.TaxID, p.BirthDate, p.Nationality,
		p.GenderIdentity, p.Ethnicity, p.EthnicityName, p.MaritalStatus, p.EducationLevel,
		p.Dependents, p.Phone, p.AddressStreet, p.AddressNumber, p.AddressPostalCode,
		p.AddressCity, p.AddressProvince, p.AddressCountry,
	}
}

func buildInsertPerson(p models.Person) (string, []any, error) {
	return psql.Insert("persons").
		Columns(personColumns[1:]...).
		Values(personValues(p)...).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectPerson(id int64) (string, []any, error) {
	return psql.Select(personColumns...).From("persons").Where(sq.Eq{"id": id}).ToSql()
}

func buildUpdatePerson(p models.Person) (string, []any, error) {
	values := personValues(p)
	q := psql.Update("persons")
	// user_email is fixed at creation
	for i, column := range personColumns[2:] {
		q = q.Set(column, values[i+1])
	}
	return q.Where(sq.Eq{"id": p.ID}).ToSql()
}

func buildDeletePerson(id int64) (string, []any, error) {
	return psql.Delete("persons").Where(sq.Eq{"id": id}).ToSql()
}
