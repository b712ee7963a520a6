package stage

import (
	"context"
	"sort"

	stageDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/stage"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type Stage struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Status    string `json:"status"`
}

type CommentTask struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	StageID    string     `json:"stage_id"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	AssignedTo string     `json:"assigned_to"`
}

// ReaderAPI is the read-only view of stages and comment tasks. Rows are written
// by the seeder or by other systems sharing the database.
type ReaderAPI interface {
	ListStages(ctx context.Context) ([]*Stage, error)
	ListCommentTasks(ctx context.Context) ([]*CommentTask, error)
}

// OpenTasks keeps every task that is not done.
func OpenTasks(tasks []*CommentTask) []*CommentTask {
	out := make([]*CommentTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != TaskDone {
			out = append(out, t)
		}
	}
	return out
}

// StagesForProject returns the stages of one project ordered by position.
func StagesForProject(stages []*Stage, projectID string) []*Stage {
	out := make([]*Stage, 0)
	for _, s := range stages {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func FromDataModel(s *stageDatamodel.Stage) *Stage {
	return &Stage{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Name:      s.Name,
		Position:  s.Position,
		Status:    s.Status,
	}
}

func TaskFromDataModel(t *stageDatamodel.CommentTask) *CommentTask {
	return &CommentTask{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		StageID:    t.StageID,
		Title:      t.Title,
		Status:     TaskStatus(t.Status),
		AssignedTo: t.AssignedTo,
	}
}
