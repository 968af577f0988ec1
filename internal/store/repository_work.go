package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/models"
)

// workRepository stores works with their role and task links. Role and task
// names are find-or-create: the first work that mentions a name creates the
// lookup row and later works reuse it.
type workRepository struct {
	db Querier
}

type lookupEntry struct {
	id   int64
	name string
}

func scanWork(row rowScanner) (models.Work, error) {
	var (
		w          models.Work
		start, end sql.NullTime
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Title, &w.ProductionType, &start, &end, &w.Description, &w.PortfolioURL); err != nil {
		return models.Work{}, err
	}
	w.StartDate, w.EndDate = timePtr(start), timePtr(end)
	w.Roles = []models.WorkRole{}
	w.Tasks = []models.WorkTask{}
	return w, nil
}

func (r *workRepository) CreateWork(ctx context.Context, work models.Work) (models.Work, error) {
	query, args, err := buildInsertWork(work)
	if err != nil {
		return models.Work{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&work.ID); err != nil {
		if isForeignKeyViolation(err) {
			return models.Work{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.CreateWork").Msg("error inserting work")
		return models.Work{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = r.linkLookups(ctx, work); err != nil {
		return models.Work{}, err
	}

	return r.GetWork(ctx, work.ID, work.UserID)
}

func (r *workRepository) GetWork(ctx context.Context, id int64, userID string) (models.Work, error) {
	query, args, err := buildSelectWork(id, userID)
	if err != nil {
		return models.Work{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	work, err := scanWork(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Work{}, ErrWorkNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.GetWork").Msg("error selecting work")
		return models.Work{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	works := []models.Work{work}
	if err = r.attachLookups(ctx, works); err != nil {
		return models.Work{}, err
	}
	return works[0], nil
}

func (r *workRepository) ListWorks(ctx context.Context, userID string) ([]models.Work, error) {
	query, args, err := buildListWorks(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.ListWorks").Msg("error selecting works")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	works := make([]models.Work, 0)
	for rows.Next() {
		work, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		works = append(works, work)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	if len(works) == 0 {
		return works, nil
	}

	if err = r.attachLookups(ctx, works); err != nil {
		return nil, err
	}
	return works, nil
}

// UpdateWork rewrites the work row and replaces its role and task links.
func (r *workRepository) UpdateWork(ctx context.Context, work models.Work) (models.Work, error) {
	query, args, err := buildUpdateWork(work)
	if err != nil {
		return models.Work{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = execAffecting(ctx, r.db, query, args, ErrWorkNotFound); err != nil {
		return models.Work{}, err
	}

	for _, kind := range []models.WorkLookup{models.WorkLookupRoles, models.WorkLookupTasks} {
		query, args, err = buildDeleteLookupLinks(kind, work.ID)
		if err != nil {
			return models.Work{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*workRepository.UpdateWork").Msg("error deleting work links")
			return models.Work{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = r.linkLookups(ctx, work); err != nil {
		return models.Work{}, err
	}

	return r.GetWork(ctx, work.ID, work.UserID)
}

func (r *workRepository) DeleteWork(ctx context.Context, id int64, userID string) error {
	query, args, err := buildDeleteWork(id, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return execAffecting(ctx, r.db, query, args, ErrWorkNotFound)
}

func (r *workRepository) ListWorkRoles(ctx context.Context) ([]models.WorkRole, error) {
	entries, err := r.listLookup(ctx, models.WorkLookupRoles)
	if err != nil {
		return nil, err
	}
	roles := make([]models.WorkRole, 0, len(entries))
	for _, e := range entries {
		roles = append(roles, models.WorkRole{ID: e.id, Name: e.name})
	}
	return roles, nil
}

func (r *workRepository) ListWorkTasks(ctx context.Context) ([]models.WorkTask, error) {
	entries, err := r.listLookup(ctx, models.WorkLookupTasks)
	if err != nil {
		return nil, err
	}
	tasks := make([]models.WorkTask, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, models.WorkTask{ID: e.id, Name: e.name})
	}
	return tasks, nil
}

func (r *workRepository) listLookup(ctx context.Context, kind models.WorkLookup) ([]lookupEntry, error) {
	query, args, err := buildListLookup(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.listLookup").Str("lookup", string(kind)).Msg("error selecting lookup")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]lookupEntry, 0)
	for rows.Next() {
		var e lookupEntry
		if err = rows.Scan(&e.id, &e.name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return entries, nil
}

func (r *workRepository) linkLookups(ctx context.Context, work models.Work) error {
	roleNames := make([]string, 0, len(work.Roles))
	for _, role := range work.Roles {
		roleNames = append(roleNames, role.Name)
	}
	taskNames := make([]string, 0, len(work.Tasks))
	for _, task := range work.Tasks {
		taskNames = append(taskNames, task.Name)
	}

	if err := r.link(ctx, models.WorkLookupRoles, work.ID, roleNames); err != nil {
		return err
	}
	return r.link(ctx, models.WorkLookupTasks, work.ID, taskNames)
}

func (r *workRepository) link(ctx context.Context, kind models.WorkLookup, workID int64, names []string) error {
	ids := make([]int64, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		id, err := r.ensureLookup(ctx, kind, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildInsertLookupLinks(kind, workID, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.link").Str("lookup", string(kind)).Msg("error linking lookup")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *workRepository) ensureLookup(ctx context.Context, kind models.WorkLookup, name string) (int64, error) {
	query, args, err := buildEnsureLookup(kind, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.ensureLookup").Str("lookup", string(kind)).Msg("error ensuring lookup")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return id, nil
}

// attachLookups fills Roles and Tasks of works in two queries.
func (r *workRepository) attachLookups(ctx context.Context, works []models.Work) error {
	ids := make([]int64, 0, len(works))
	index := make(map[int64]int, len(works))
	for i, w := range works {
		ids = append(ids, w.ID)
		index[w.ID] = i
	}

	for _, kind := range []models.WorkLookup{models.WorkLookupRoles, models.WorkLookupTasks} {
		query, args, err := buildSelectLinkedLookup(kind, ids...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		linked, err := r.selectLinked(ctx, query, args)
		if err != nil {
			return err
		}
		for workID, entries := range linked {
			i, ok := index[workID]
			if !ok {
				continue
			}
			for _, e := range entries {
				if kind == models.WorkLookupRoles {
					works[i].Roles = append(works[i].Roles, models.WorkRole{ID: e.id, Name: e.name})
				} else {
					works[i].Tasks = append(works[i].Tasks, models.WorkTask{ID: e.id, Name: e.name})
				}
			}
		}
	}
	return nil
}

func (r *workRepository) selectLinked(ctx context.Context, query string, args []any) (map[int64][]lookupEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*workRepository.selectLinked").Msg("error selecting work links")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	linked := make(map[int64][]lookupEntry)
	for rows.Next() {
		var (
			workID int64
			e      lookupEntry
		)
		if err = rows.Scan(&workID, &e.id, &e.name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		linked[workID] = append(linked[workID], e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return linked, nil
}
