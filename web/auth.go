package web

import (
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"time"

	"flip-menu/lang"
	"flip-menu/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie = "flip_admin"
	sessionTTL    = 12 * time.Hour
	adminSubject  = "admin"
)

// sessionSecret uses JWT_SECRET when set. Otherwise a random key is made,
// which logs every admin out on restart.
func sessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	log.Printf("web: JWT_SECRET not set, admin sessions will not survive a restart")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Server) issueToken(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) validToken(raw string) bool {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	sub, err := token.Claims.GetSubject()
	return err == nil && sub == adminSubject
}

// requireAdmin accepts the session cookie or a Bearer token. Pages redirect
// to the login form; the API answers 401.
func (s *Server) requireAdmin(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(sessionCookie)
		if raw == "" {
			if h := c.GetHeader("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
				raw = h[7:]
			}
		}
		if raw != "" && s.validToken(raw) {
			c.Set("admin", true)
			c.Next()
			return
		}
		if api {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/admin/login")
		c.Abort()
	}
}

func (s *Server) loginPage(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{"Title": lang.T(langOf(c), "login_title")})
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()
	l := langOf(c)
	client := c.ClientIP()
	fail := func(status int, msg string) {
		s.render(c, status, "login.html", gin.H{"Title": lang.T(l, "login_title"), "Error": msg})
	}

	if s.cfg.Admin.PasswordHash == "" {
		fail(http.StatusServiceUnavailable, lang.T(l, "login_disabled"))
		return
	}
	wait, err := services.LoginThrottleWaitSeconds(ctx, services.ThrottleSurfaceWeb, client)
	if err != nil {
		log.Printf("login throttle: %v", err)
	}
	if wait > 0 {
		fail(http.StatusTooManyRequests, lang.T(l, "login_wait", wait))
		return
	}

	ok, err := services.CheckAdminPassword(s.cfg.Admin.PasswordHash, c.PostForm("password"))
	if err != nil {
		log.Printf("login: %v", err)
	}
	if !ok {
		if err := services.RecordLoginFailed(ctx, services.ThrottleSurfaceWeb, client); err != nil {
			log.Printf("login throttle: %v", err)
		}
		fail(http.StatusUnauthorized, lang.T(l, "login_failed"))
		return
	}
	if err := services.RecordLoginSuccess(ctx, services.ThrottleSurfaceWeb, client); err != nil {
		log.Printf("login throttle: %v", err)
	}

	token, err := s.issueToken(time.Now())
	if err != nil {
		fail(http.StatusInternalServerError, lang.T(l, "err_generic", err.Error()))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/menu")
}
