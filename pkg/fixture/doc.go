// Package fixture loads a YAML description of schools, users, teachers,
// students and super-admin grants, and turns it into in-memory stores for
// local development and demos.
//
// Records reference each other by slug (tenants) and by ID (users), so a
// fixture file reads naturally:
//
//	tenants:
//	  - id: 0b7f2c36-4c55-4f0e-9a55-0c7d0f7b9a01
//	    name: SMAN 1
//	    slug: sman1
//	    active: true
//	    features: [ppdb]
//	    modules:
//	      ppdb: [view, approve]
//	      grades: [view]
//	users:
//	  - id: 5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c10
//	    role: teacher
//	    tenant: sman1
//	teachers:
//	  - nik: T123
//	    tenant: sman1
//	    user: 5d0d9a4e-9a0e-4f53-8f39-1f0f2a6c1c10
//	    branches:
//	      - tenant: sman2
//	        active: true
package fixture
