package server

// Route path constants
const (
	RouteHome     = "/"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteCallback = "/oauth_callback"
)
