package rbac

type permission struct {
	Resource string
	Action   string
}

// rolePermissions is the static policy table. The keys match the values
// stored in the employees.role column; permissions are fixed at build time.
var rolePermissions = map[string][]permission{
	"employee": {
		{"leave", "create"},
		{"leave", "read"},
		{"leave", "cancel"},
		{"dashboard", "read"},
	},
	"manager": {
		{"leave", "create"},
		{"leave", "read"},
		{"leave", "cancel"},
		{"leave", "approve"},
		{"leave", "read_all"},
		{"employee", "read_all"},
		{"dashboard", "read"},
	},
}
