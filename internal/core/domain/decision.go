package domain

// Route names the navigational state the frontend should move to after an
// identity has been resolved.
type Route string

const (
	RouteClientDashboard  Route = "client-dashboard"
	RouteProfileEditor    Route = "consultant-profile-editor"
	RouteDirectory        Route = "consultant-directory"
)

// Decision is the outcome of resolving an identity: the effective role,
// whether the role-specific profile has been filled in beyond the stub, and
// where the caller should navigate next.
type Decision struct {
	Role       string `json:"role"`
	HasProfile bool   `json:"has_profile"`
	NextRoute  Route  `json:"next_route"`
}
