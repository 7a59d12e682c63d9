package docsite

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/docsite/content"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	rel := strings.TrimPrefix(c.Request().URL.Path, "/admin/edit/")
	path, err := a.contentPath(rel)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminEdit(rel, string(raw), CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	rel := strings.TrimSpace(c.FormValue("path"))
	path, err := a.contentPath(rel)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	body := c.FormValue("content")
	// Normalize the CRLF a browser textarea submits.
	body = strings.ReplaceAll(body, "\r\n", "\n")
	if _, _, err := content.SplitFrontmatter([]byte(body)); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Frontmatter+does+not+parse.+Not+saved.")
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved "+rel)
}

// contentPath resolves an admin-supplied relative path inside the content
// dir, rejecting traversal and non-markdown targets.
func (a *App) contentPath(rel string) (string, error) {
	if rel == "" || !strings.HasSuffix(rel, ".md") {
		return "", fmt.Errorf("path must name a .md file")
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("path escapes the content directory")
	}
	return filepath.Join(a.Config.ContentDir, clean), nil
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(pageRows(a.Config, pages), msg, CsrfToken(c)))
}
