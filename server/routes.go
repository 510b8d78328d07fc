package server

func (s *Server) initRoutes() {
	mw := s.HTMLMiddleWare()

	s.RegisterRouteHandler("GET "+RouteHome+"{$}", ChainMiddleware(s.handle(s.HomeHandler()), mw...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.handle(s.LoginHandler()), mw...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.handle(s.OAuthCallbackHandler()), mw...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.handle(s.LogoutHandler()), mw...))
}
