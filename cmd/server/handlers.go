package main

import (
	"net/http"

	"github.com/dmitrymomot/schoolkit"
	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

type meResponse struct {
	Principal *access.Principal `json:"principal"`
	Tenant    *tenant.Tenant    `json:"tenant"`
}

type gradesResponse struct {
	Student *school.Student `json:"student"`
	Grades  []string        `json:"grades"`
}

type ppdbResponse struct {
	Tenant string `json:"tenant"`
	Open   bool   `json:"open"`
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := access.PrincipalFromContext(r.Context())
	_ = schoolkit.WriteJSON(w, http.StatusOK, meResponse{
		Principal: p,
		Tenant:    tenant.MustFromContext(r.Context()),
	})
}

func handleTeacher(w http.ResponseWriter, r *http.Request) {
	_ = schoolkit.WriteJSON(w, http.StatusOK, routebind.MustTeacherFromContext(r.Context()))
}

func handleStudent(w http.ResponseWriter, r *http.Request) {
	_ = schoolkit.WriteJSON(w, http.StatusOK, routebind.MustStudentFromContext(r.Context()))
}

// Grade records live outside this service; the route exists to exercise
// permission checks together with binding.
func handleGrades(w http.ResponseWriter, r *http.Request) {
	_ = schoolkit.WriteJSON(w, http.StatusOK, gradesResponse{
		Student: routebind.MustStudentFromContext(r.Context()),
		Grades:  []string{},
	})
}

func handlePPDB(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	_ = schoolkit.WriteJSON(w, http.StatusOK, ppdbResponse{Tenant: t.Slug, Open: true})
}
