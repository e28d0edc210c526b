package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"learner": {
		"quiz:grade",
		"reviews:view-own",
		"stats:view-own",
	},
	"tutor": {
		"quiz:grade",
		"reviews:view-own",
		"reviews:view-all",
		"stats:view-own",
		"stats:view-all",
	},
	"admin": {
		"*", // everything
	},
}
