// Package web serves the diagnostic page, the customer menu, the admin
// panel and the JSON API.
package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"flip-menu/config"
	"flip-menu/lang"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    *config.Config
	pages  map[string]*template.Template
	secret []byte
	engine *gin.Engine
}

func New(cfg *config.Config) (*Server, error) {
	pages, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	secret, err := sessionSecret(cfg.Admin.JWTSecret)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, pages: pages, secret: secret}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if allowsAny(s.cfg.HTTP.CORSOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.HTTP.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))
	r.Use(s.withLang)

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	if s.cfg.HTTP.Diagnostics {
		r.GET("/", s.diagnosticsPage)
		r.POST("/diag/connection", s.diagConnection)
		r.POST("/diag/seed", s.diagSeed)
		r.POST("/diag/smoke", s.diagSmoke)
	} else {
		r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/menu") })
	}
	r.GET("/menu", s.menuPage)

	r.GET("/admin/login", s.loginPage)
	r.POST("/admin/login", s.login)
	r.POST("/admin/logout", s.logout)

	admin := r.Group("/admin", s.requireAdmin(false))
	{
		admin.GET("", s.adminPage)
		admin.GET("/export.xlsx", s.exportXLSX)
		admin.GET("/menus/new", s.newMenuPage)
		admin.POST("/menus", s.saveMenu)
		admin.GET("/menus/:id/edit", s.editMenuPage)
		admin.POST("/menus/:id", s.saveMenu)
		admin.GET("/menus/:id/delete", s.confirmDeletePage)
		admin.POST("/menus/:id/delete", s.deleteMenu)
	}

	s.apiRoutes(r.Group("/api"))
	return r
}

func allowsAny(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// Run serves until ctx is done, then shuts down with a 5s grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("http: listening on %s", s.cfg.HTTP.Addr)
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx2)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

const langCookie = "lang"

// withLang resolves the UI language from ?lang=, then the cookie, then
// Accept-Language.
func (s *Server) withLang(c *gin.Context) {
	l := c.Query("lang")
	if lang.Valid(l) {
		c.SetCookie(langCookie, l, 365*24*3600, "/", "", false, false)
	} else if v, err := c.Cookie(langCookie); err == nil && lang.Valid(v) {
		l = v
	} else {
		l = lang.Negotiate(c.GetHeader("Accept-Language"))
	}
	c.Set("lang", l)
	c.Next()
}

func langOf(c *gin.Context) string {
	if l := c.GetString("lang"); l != "" {
		return l
	}
	return lang.Th
}

func (s *Server) render(c *gin.Context, status int, page string, data gin.H) {
	t, ok := s.pages[page]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown page %s", page)
		return
	}
	data["Lang"] = langOf(c)
	if _, ok := data["Admin"]; !ok {
		data["Admin"] = c.GetBool("admin")
	}
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(c.Writer, "layout.html", data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}
