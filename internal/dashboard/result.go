package dashboard

import "github.com/frahmantamala/project-dashboard/internal/user"

// Result reports the outcome of a user action to the presentation layer.
type Result struct {
	OK      bool
	Message string
	Err     error
}

func Success(message string) Result {
	return Result{OK: true, Message: message}
}

func Failure(message string, err error) Result {
	return Result{Message: message, Err: err}
}

const (
	MsgProjectSaved       = "Project saved successfully"
	MsgProjectSaveFailed  = "Failed to save project. Please try again."
	MsgProjectIncomplete  = "Title, client and deadline are required"
	MsgLeadSaved          = "Lead saved successfully"
	MsgLeadSaveFailed     = "Failed to save lead. Please try again."
	MsgLeadDeleted        = "Lead deleted successfully"
	MsgLeadDeleteFailed   = "Failed to delete lead. Please try again."
	MsgLeadDeleteCanceled = "Lead deletion cancelled"
	MsgConfirmDeleteLead  = "Are you sure you want to delete this lead?"
	MsgEmployeeCreated    = "Employee created successfully"
	MsgClientCreated      = "Client created successfully"
	MsgUserCreateFailed   = "Failed to create user"
	MsgSubmissionPending  = "A submission is already in progress"
	MsgManagerOnly        = "Only managers can do this"
	MsgNoFormOpen         = "No form is open"
)

// UserCreatedMessage names the kind of account that was created.
func UserCreatedMessage(role user.Role) string {
	if role == user.RoleClient {
		return MsgClientCreated
	}
	return MsgEmployeeCreated
}
