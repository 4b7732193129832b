package api_keys

// ApiScope is a coarse action:resource token granted to machine credentials.
// It is a separate namespace from role permissions: holding a scope never
// implies a role permission and vice versa.
type ApiScope string

const (
	ScopeReadTasks  ApiScope = "read:tasks"
	ScopeWriteTasks ApiScope = "write:tasks"
	ScopeReadTeams  ApiScope = "read:teams"
	ScopeWriteTeams ApiScope = "write:teams"
	ScopeReadUsers  ApiScope = "read:users"
)

func AllScopes() []ApiScope {
	return []ApiScope{
		ScopeReadTasks,
		ScopeWriteTasks,
		ScopeReadTeams,
		ScopeWriteTeams,
		ScopeReadUsers,
	}
}

func (s ApiScope) IsValid() bool {
	switch s {
	case ScopeReadTasks, ScopeWriteTasks, ScopeReadTeams, ScopeWriteTeams, ScopeReadUsers:
		return true
	}
	return false
}

// HasAllScopes reports whether granted contains every scope in required.
func HasAllScopes(granted []ApiScope, required []ApiScope) bool {
	grantedSet := make(map[ApiScope]struct{}, len(granted))
	for _, scope := range granted {
		grantedSet[scope] = struct{}{}
	}

	for _, scope := range required {
		if _, ok := grantedSet[scope]; !ok {
			return false
		}
	}

	return true
}
