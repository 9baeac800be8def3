// Package routebind turns natural-key route parameters into tenant-scoped
// teacher and student records.
//
// Teachers are looked up in their primary tenant first. When that misses,
// the binder searches teachers with an active branch membership in the tenant.
// Students are looked up in their owning tenant only. A record from another
// tenant is never returned; a miss is a *NotFoundError matching ErrEntityNotFound.
//
//	binder := routebind.New(store, store)
//	r.With(binder.Teacher("teacher")).Get("/teachers/{teacher}", func(w http.ResponseWriter, r *http.Request) {
//		t := routebind.MustTeacherFromContext(r.Context())
//		...
//	})
package routebind
