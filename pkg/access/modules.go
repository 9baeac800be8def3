package access

import "slices"

// CoreModules are enabled for every tenant regardless of its module configuration.
var CoreModules = []string{
	"students",
	"teachers",
	"classes",
	"subjects",
	"schedules",
	"attendances",
	"grades",
	"users",
	"settings",
	"academic-years",
	"announcements",
	"events",
	"additional-duties",
}

// IsCoreModule reports whether key is one of CoreModules.
func IsCoreModule(key string) bool {
	return slices.Contains(CoreModules, key)
}
