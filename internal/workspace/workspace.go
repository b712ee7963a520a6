package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/frahmantamala/project-dashboard/pkg/metrics"
)

type ProjectServiceAPI interface {
	Create(ctx context.Context, f project.Fields) (*project.Project, error)
	Update(ctx context.Context, id string, f project.Fields) (*project.Project, error)
	List(ctx context.Context) ([]*project.Project, error)
}

type LeadServiceAPI interface {
	Create(ctx context.Context, f lead.Fields) (*lead.Lead, error)
	Update(ctx context.Context, id string, f lead.Fields) (*lead.Lead, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*lead.Lead, error)
}

type UserServiceAPI interface {
	CreateAccount(ctx context.Context, req user.AccountRequest) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
}

// Subscriber is the part of the event bus the refresh loop listens on.
type Subscriber interface {
	Subscribe(handler events.Handler, eventTypes ...string) (unsubscribe func())
}

type collection string

const (
	collectionProjects collection = "projects"
	collectionStages   collection = "stages"
	collectionTasks    collection = "comment_tasks"
	collectionLeads    collection = "leads"
	collectionUsers    collection = "users"
)

var allCollections = []collection{collectionProjects, collectionStages, collectionTasks, collectionLeads, collectionUsers}

type snapshot struct {
	projects []*project.Project
	stages   []*stage.Stage
	tasks    []*stage.CommentTask
	leads    []*lead.Lead
	users    []*user.User
}

// Workspace is the shared data context behind the dashboard: an in-memory
// snapshot of every collection, reloaded after each write.
type Workspace struct {
	projects ProjectServiceAPI
	leads    LeadServiceAPI
	users    UserServiceAPI
	stages   stage.ReaderAPI

	storeTimeout time.Duration
	logger       *slog.Logger

	mu          sync.RWMutex
	snap        snapshot
	gens        map[collection]generation
	refreshedAt time.Time
}

// generation orders reloads of one collection. Rows from a reload are kept
// only if no reload that started later has stored already.
type generation struct {
	started uint64
	stored  uint64
}

var _ dashboard.DataContext = (*Workspace)(nil)

func New(projects ProjectServiceAPI, leads LeadServiceAPI, users UserServiceAPI, stages stage.ReaderAPI, cfg internal.WorkspaceConfig, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		projects:     projects,
		leads:        leads,
		users:        users,
		stages:       stages,
		storeTimeout: cfg.StoreTimeout,
		logger:       logger,
		gens:         make(map[collection]generation),
	}
}

// ----------------- READS -----------------

func (w *Workspace) Projects() []*project.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*project.Project{}, w.snap.projects...)
}

func (w *Workspace) Stages() []*stage.Stage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*stage.Stage{}, w.snap.stages...)
}

func (w *Workspace) CommentTasks() []*stage.CommentTask {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*stage.CommentTask{}, w.snap.tasks...)
}

func (w *Workspace) Leads() []*lead.Lead {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*lead.Lead{}, w.snap.leads...)
}

func (w *Workspace) Users() []*user.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*user.User{}, w.snap.users...)
}

// ----------------- WRITES -----------------

func (w *Workspace) CreateProject(ctx context.Context, f project.Fields) (*project.Project, error) {
	var p *project.Project
	err := w.write(ctx, "create_project", collectionProjects, func(ctx context.Context) (err error) {
		p, err = w.projects.Create(ctx, f)
		return err
	})
	return p, err
}

func (w *Workspace) UpdateProject(ctx context.Context, id string, f project.Fields) (*project.Project, error) {
	var p *project.Project
	err := w.write(ctx, "update_project", collectionProjects, func(ctx context.Context) (err error) {
		p, err = w.projects.Update(ctx, id, f)
		return err
	})
	return p, err
}

func (w *Workspace) CreateLead(ctx context.Context, f lead.Fields) (*lead.Lead, error) {
	var l *lead.Lead
	err := w.write(ctx, "create_lead", collectionLeads, func(ctx context.Context) (err error) {
		l, err = w.leads.Create(ctx, f)
		return err
	})
	return l, err
}

func (w *Workspace) UpdateLead(ctx context.Context, id string, f lead.Fields) (*lead.Lead, error) {
	var l *lead.Lead
	err := w.write(ctx, "update_lead", collectionLeads, func(ctx context.Context) (err error) {
		l, err = w.leads.Update(ctx, id, f)
		return err
	})
	return l, err
}

func (w *Workspace) DeleteLead(ctx context.Context, id string) error {
	return w.write(ctx, "delete_lead", collectionLeads, func(ctx context.Context) error {
		return w.leads.Delete(ctx, id)
	})
}

// CreateUserAccount stores the account. The users collection is reloaded by
// RefreshUsers, which the caller runs once it has closed its form.
func (w *Workspace) CreateUserAccount(ctx context.Context, req user.AccountRequest) (*user.User, error) {
	var u *user.User
	err := w.write(ctx, "create_user", "", func(ctx context.Context) (err error) {
		u, err = w.users.CreateAccount(ctx, req)
		return err
	})
	return u, err
}

func (w *Workspace) RefreshUsers(ctx context.Context) error {
	return w.reload(ctx, collectionUsers)
}

// write runs op against the store under the store timeout, then reloads
// reloadAfter. A failed reload is logged; the write itself already succeeded.
func (w *Workspace) write(ctx context.Context, operation string, reloadAfter collection, op func(context.Context) error) error {
	callCtx, cancel := internal.WithTimeout(ctx, w.storeTimeout)
	start := time.Now()
	err := op(callCtx)
	cancel()
	metrics.RecordStoreCall(operation, err, time.Since(start))

	if err != nil {
		metrics.IncrementStoreWriteFailure(operation)
		w.logger.Error("store write failed", "operation", operation, "error", err)
		return err
	}

	if reloadAfter != "" {
		if rerr := w.reload(ctx, reloadAfter); rerr != nil {
			w.logger.Warn("reload after write failed", "operation", operation, "collection", reloadAfter, "error", rerr)
		}
	}
	return nil
}

// ----------------- REFRESH -----------------

// Refresh reloads every collection. Collections that fail keep their previous
// contents; the returned error joins every failure.
func (w *Workspace) Refresh(ctx context.Context) error {
	var errs []error
	for _, c := range allCollections {
		if err := w.reload(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	w.mu.Lock()
	w.refreshedAt = time.Now()
	w.mu.Unlock()
	return nil
}

// LastRefresh is when every collection last loaded cleanly; zero until then.
func (w *Workspace) LastRefresh() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.refreshedAt
}

func (w *Workspace) reload(ctx context.Context, c collection) error {
	callCtx, cancel := internal.WithTimeout(ctx, w.storeTimeout)
	defer cancel()

	start := time.Now()
	err := w.load(callCtx, c)
	metrics.RecordStoreCall("list_"+string(c), err, time.Since(start))
	metrics.IncrementSnapshotRefresh(string(c), err)
	if err != nil {
		w.logger.Error("failed to reload collection", "collection", c, "error", err)
	}
	return err
}

func (w *Workspace) load(ctx context.Context, c collection) error {
	gen := w.begin(c)

	switch c {
	case collectionProjects:
		rows, err := w.projects.List(ctx)
		if err != nil {
			return err
		}
		w.commit(c, gen, func() { w.snap.projects = rows })
	case collectionStages:
		rows, err := w.stages.ListStages(ctx)
		if err != nil {
			return err
		}
		w.commit(c, gen, func() { w.snap.stages = rows })
	case collectionTasks:
		rows, err := w.stages.ListCommentTasks(ctx)
		if err != nil {
			return err
		}
		w.commit(c, gen, func() { w.snap.tasks = rows })
	case collectionLeads:
		rows, err := w.leads.List(ctx)
		if err != nil {
			return err
		}
		w.commit(c, gen, func() { w.snap.leads = rows })
	case collectionUsers:
		rows, err := w.users.List(ctx)
		if err != nil {
			return err
		}
		w.commit(c, gen, func() { w.snap.users = rows })
	}
	return nil
}

func (w *Workspace) begin(c collection) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	g := w.gens[c]
	g.started++
	w.gens[c] = g
	return g.started
}

// commit stores rows read by reload gen unless a newer reload got there first.
func (w *Workspace) commit(c collection, gen uint64, set func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	g := w.gens[c]
	if gen < g.stored {
		w.logger.Debug("dropping stale reload", "collection", c, "generation", gen, "stored", g.stored)
		return
	}
	g.stored = gen
	w.gens[c] = g
	set()
}

// Run keeps the snapshot fresh until ctx is done: a full refresh every
// interval, plus a reload of the matching collection on each bus event.
func (w *Workspace) Run(ctx context.Context, interval time.Duration, bus Subscriber) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	if bus != nil {
		unsubscribe := bus.Subscribe(w.handleEvent,
			append(append(append([]string{}, events.ProjectEventTypes...), events.LeadEventTypes...), events.UserEventTypes...)...)
		defer unsubscribe()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("workspace refresh loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("workspace refresh loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				w.logger.Warn("scheduled refresh incomplete", "error", err)
			}
		}
	}
}

func (w *Workspace) handleEvent(ctx context.Context, event events.Event) error {
	c, ok := collectionFor(event.EventType())
	if !ok {
		return nil
	}
	return w.reload(ctx, c)
}

func collectionFor(eventType string) (collection, bool) {
	for _, t := range events.ProjectEventTypes {
		if t == eventType {
			return collectionProjects, true
		}
	}
	for _, t := range events.LeadEventTypes {
		if t == eventType {
			return collectionLeads, true
		}
	}
	for _, t := range events.UserEventTypes {
		if t == eventType {
			return collectionUsers, true
		}
	}
	return "", false
}
