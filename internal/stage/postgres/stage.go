package postgres

import (
	"context"
	"fmt"

	stageDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/stage"
	"github.com/frahmantamala/project-dashboard/internal/stage"
	"github.com/jmoiron/sqlx"
)

const (
	listStagesQuery = `SELECT id, project_id, name, position, status
FROM stages
ORDER BY project_id, position`

	listCommentTasksQuery = `SELECT id, project_id, COALESCE(stage_id, '') AS stage_id, title, status, COALESCE(assigned_to, '') AS assigned_to
FROM comment_tasks
ORDER BY project_id, id`
)

type StageReader struct {
	db *sqlx.DB
}

func NewStageReader(db *sqlx.DB) stage.ReaderAPI {
	return &StageReader{db: db}
}

func (r *StageReader) ListStages(ctx context.Context) ([]*stage.Stage, error) {
	var rows []stageDatamodel.Stage
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listStagesQuery)); err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}

	out := make([]*stage.Stage, 0, len(rows))
	for i := range rows {
		out = append(out, stage.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *StageReader) ListCommentTasks(ctx context.Context) ([]*stage.CommentTask, error) {
	var rows []stageDatamodel.CommentTask
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listCommentTasksQuery)); err != nil {
		return nil, fmt.Errorf("list comment tasks: %w", err)
	}

	out := make([]*stage.CommentTask, 0, len(rows))
	for i := range rows {
		out = append(out, stage.TaskFromDataModel(&rows[i]))
	}
	return out, nil
}
