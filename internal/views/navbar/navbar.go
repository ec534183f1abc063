// Package navbar builds the top bar for a session state.
package navbar

import "loanos-client/internal/session"

// Target is where a navbar entry leads.
type Target string

const (
	TargetLanding   Target = "landing"
	TargetLogin     Target = "login"
	TargetRegister  Target = "register"
	TargetDashboard Target = "user"
	TargetApply     Target = "apply"
	TargetAdmin     Target = "admin"
	TargetLogout    Target = "logout"
)

type Link struct {
	Label  string
	Target Target
}

type Bar struct {
	// Visible is false while the session is still being restored.
	Visible bool
	// Badge is the role label, empty when nobody is logged in.
	Badge   string
	IsAdmin bool
	Links   []Link
}

func Build(st session.State) Bar {
	if st.IsUnknown() {
		return Bar{}
	}
	sess, ok := st.Session()
	if !ok {
		return Bar{
			Visible: true,
			Links: []Link{
				{Label: "Login", Target: TargetLogin},
				{Label: "Register", Target: TargetRegister},
			},
		}
	}

	bar := Bar{Visible: true, Badge: sess.Role(), IsAdmin: sess.IsAdmin}
	if sess.IsAdmin {
		bar.Links = append(bar.Links, Link{Label: "Admin Panel", Target: TargetAdmin})
	} else {
		bar.Links = append(bar.Links,
			Link{Label: "User Dashboard", Target: TargetDashboard},
			Link{Label: "New Application", Target: TargetApply},
		)
	}
	bar.Links = append(bar.Links, Link{Label: "Logout", Target: TargetLogout})
	return bar
}
