package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleLearner = "learner"
	RoleAdmin   = "admin"
)
