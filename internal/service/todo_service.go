package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"corkboard/internal/apperr"
	"corkboard/internal/domain"
	"corkboard/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000

	// bulkBatchSize bounds how many per-id statements are grouped together
	// during a bulk update.
	bulkBatchSize = 50
)

// CreateTodoInput is the already-parsed input for Create. An empty Priority
// defaults to medium.
type CreateTodoInput struct {
	Title       string
	Description string
	Priority    domain.Priority
}

// UpdateTodoInput is a partial update. Nil fields are left untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
}

// ListOptions bundle filter, sort and pagination for reads.
type ListOptions struct {
	Filter repo.Filter
	Sort   repo.Sort
	Page   repo.Page
}

// TodoService validates input and orchestrates todo persistence. Absent
// records are signalled by a nil result, never by an error.
type TodoService struct {
	repo repo.TodoRepo
	sf   singleflight.Group
}

// NewTodoService returns a new TodoService.
func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

// Create validates, trims and persists a new todo. Priority defaults to
// medium and completed to false; storage stamps both timestamps.
func (s *TodoService) Create(ctx context.Context, in CreateTodoInput) (*domain.Todo, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}
	desc, err := validDescription(in.Description)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, errInvalidPriority()
	}

	t, err := s.repo.Create(ctx, domain.Todo{
		Title:       title,
		Description: desc,
		Completed:   false,
		Priority:    priority,
	})
	if err != nil {
		return nil, apperr.Database("failed to create todo", err)
	}
	return &t, nil
}

// GetByID returns the todo, or nil when no row matches.
func (s *TodoService) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Database("failed to load todo", err)
	}
	return &t, nil
}

// List returns todos matching the options, ordered, possibly empty.
func (s *TodoService) List(ctx context.Context, opts ListOptions) ([]domain.Todo, error) {
	list, err := s.repo.List(ctx, opts.Filter, opts.Sort, opts.Page)
	if err != nil {
		return nil, apperr.Database("failed to list todos", err)
	}
	return list, nil
}

// Search lists todos whose title or description contains q, narrowed by any
// completed or priority filter in opts. A blank query returns an empty slice
// without touching storage.
func (s *TodoService) Search(ctx context.Context, q string, opts ListOptions) ([]domain.Todo, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Todo{}, nil
	}
	opts.Filter.Search = q
	return s.List(ctx, opts)
}

// Update applies the present fields after per-field validation. It always
// refreshes updated_at and never touches created_at. Returns nil when no row
// matched the id.
func (s *TodoService) Update(ctx context.Context, id int64, in UpdateTodoInput) (*domain.Todo, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	patch, err := in.patch()
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Database("failed to update todo", err)
	}
	return &t, nil
}

// Delete removes the todo and reports whether a row was actually deleted.
func (s *TodoService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validID(id); err != nil {
		return false, err
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, apperr.Database("failed to delete todo", err)
	}
	return ok, nil
}

// ToggleComplete flips the completed flag through the regular update path.
// Absence propagates as a nil result.
func (s *TodoService) ToggleComplete(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	next := !t.Completed
	return s.Update(ctx, id, UpdateTodoInput{Completed: &next})
}

// BulkUpdate applies the same partial update to every id, in batches of
// bulkBatchSize, one statement per id. All ids are validated before any
// mutation. The returned count is the number of rows actually changed; the
// loop is not wrapped in a transaction, so a mid-batch failure leaves earlier
// updates in place and is reflected in the count returned alongside the error.
func (s *TodoService) BulkUpdate(ctx context.Context, ids []int64, in UpdateTodoInput) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		if err := validID(id); err != nil {
			return 0, err
		}
	}
	patch, err := in.patch()
	if err != nil {
		return 0, err
	}

	var total int64
	for start := 0; start < len(ids); start += bulkBatchSize {
		end := start + bulkBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		for _, id := range ids[start:end] {
			n, err := s.repo.UpdateCount(ctx, id, patch)
			if err != nil {
				return total, apperr.Database("failed to bulk update todos", err)
			}
			total += n
		}
	}
	return total, nil
}

// Stats counts todos by completion and priority with independent queries run
// concurrently. Concurrent callers are collapsed with singleflight; there is
// no caching, every computation hits storage. The counts carry no snapshot
// isolation across each other.
func (s *TodoService) Stats(ctx context.Context) (domain.TodoStats, error) {
	v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return domain.TodoStats{}, err
	}
	return v.(domain.TodoStats), nil
}

func (s *TodoService) computeStats(ctx context.Context) (domain.TodoStats, error) {
	var st domain.TodoStats
	count := func(dst *int64, f repo.Filter) func() error {
		return func() error {
			n, err := s.repo.Count(ctx, f)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}

	done, pending := true, false
	low, medium, high := domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh

	g, ctx := errgroup.WithContext(ctx)
	g.Go(count(&st.Total, repo.Filter{}))
	g.Go(count(&st.Completed, repo.Filter{Completed: &done}))
	g.Go(count(&st.Pending, repo.Filter{Completed: &pending}))
	g.Go(count(&st.ByPriority.Low, repo.Filter{Priority: &low}))
	g.Go(count(&st.ByPriority.Medium, repo.Filter{Priority: &medium}))
	g.Go(count(&st.ByPriority.High, repo.Filter{Priority: &high}))
	if err := g.Wait(); err != nil {
		return domain.TodoStats{}, apperr.Database("failed to compute todo stats", err)
	}
	return st, nil
}

// patch validates the present fields and converts them to a repo patch,
// trimming string fields.
func (in UpdateTodoInput) patch() (repo.UpdatePatch, error) {
	var p repo.UpdatePatch
	if in.Title != nil {
		title, err := validTitle(*in.Title)
		if err != nil {
			return repo.UpdatePatch{}, err
		}
		p.Title = &title
	}
	if in.Description != nil {
		desc, err := validDescription(*in.Description)
		if err != nil {
			return repo.UpdatePatch{}, err
		}
		p.Description = &desc
	}
	if in.Completed != nil {
		p.Completed = in.Completed
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return repo.UpdatePatch{}, errInvalidPriority()
		}
		p.Priority = in.Priority
	}
	return p, nil
}

func validID(id int64) error {
	if id <= 0 {
		return apperr.Validation("id", "id must be a positive integer")
	}
	return nil
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.Validation("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", apperr.Validation("title", "title must be at most 255 characters")
	}
	return title, nil
}

func validDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "", apperr.Validation("description", "description must be at most 1000 characters")
	}
	return desc, nil
}

func errInvalidPriority() error {
	return apperr.Validation("priority", "priority must be one of low, medium, high")
}
