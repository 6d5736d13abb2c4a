package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	ContextKeyUserID      = "user_id"
	ContextKeyUserRole    = "user_role"
	ContextKeyUserService = "user_service"
	ContextKeyActor       = "actor"
)

// Public identifier prefixes. Issue and machine identifiers are generated
// sequentially (ISS001, MACH001, ...) and never reused.
const (
	IssueIDPrefix   = "ISS"
	MachineIDPrefix = "MACH"
)
