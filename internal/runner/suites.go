package runner

// AdminSpecs is the admin portal suite in execution order. The auth flow
// runs first so it exercises a cold login before any cached session
// state exists; every later suite may reuse the persisted context.
func AdminSpecs() []Spec {
	return []Spec{
		{Name: "Authentication Flow", Package: "./tests/admin/authflow"},
		{Name: "Dashboard", Package: "./tests/admin/dashboard"},
		{Name: "Profile Management", Package: "./tests/admin/profile"},
		{Name: "Skills CRUD", Package: "./tests/admin/skills"},
		{Name: "Work Experience CRUD", Package: "./tests/admin/experience"},
		{Name: "Certifications CRUD", Package: "./tests/admin/certifications"},
		{Name: "Portfolio Projects CRUD", Package: "./tests/admin/portfolioprojects"},
		{Name: "Messaging", Package: "./tests/admin/messaging"},
		{Name: "Miniatures", Package: "./tests/admin/miniatures"},
		{Name: "Demo User Access", Package: "./tests/admin/rbac"},
	}
}

// PublicSpecs is the public website suite in execution order.
func PublicSpecs() []Spec {
	return []Spec{
		{Name: "Home Page", Package: "./tests/public/home"},
		{Name: "Contact Form", Package: "./tests/public/contact"},
		{Name: "Miniatures Gallery", Package: "./tests/public/gallery"},
		{Name: "Projects Page", Package: "./tests/public/projectspage"},
		{Name: "Error Pages", Package: "./tests/public/errorpages"},
	}
}
