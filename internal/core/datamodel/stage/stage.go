package stage

// Stage and CommentTask rows are read through sqlx (db tags) and written by the
// seeder through gorm (gorm tags).
type Stage struct {
	ID        string `db:"id" gorm:"primaryKey;column:id;type:varchar(36)"`
	ProjectID string `db:"project_id" gorm:"column:project_id;index;not null"`
	Name      string `db:"name" gorm:"column:name;not null"`
	Position  int    `db:"position" gorm:"column:position;not null"`
	Status    string `db:"status" gorm:"column:status;not null"`
}

func (Stage) TableName() string {
	return "stages"
}

type CommentTask struct {
	ID         string `db:"id" gorm:"primaryKey;column:id;type:varchar(36)"`
	ProjectID  string `db:"project_id" gorm:"column:project_id;index;not null"`
	StageID    string `db:"stage_id" gorm:"column:stage_id"`
	Title      string `db:"title" gorm:"column:title;not null"`
	Status     string `db:"status" gorm:"column:status;not null"`
	AssignedTo string `db:"assigned_to" gorm:"column:assigned_to"`
}

func (CommentTask) TableName() string {
	return "comment_tasks"
}
