package docsite

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const searchResultLimit = 20

func (a *App) routeFromRequest(c echo.Context) string {
	route := c.Request().URL.Path
	if a.Config.Base != "/" {
		route = strings.TrimPrefix(route, strings.TrimSuffix(a.Config.Base, "/"))
		if route == "" {
			route = "/"
		}
	}
	return route
}

func (a *App) handlePage(c echo.Context) error {
	route := a.routeFromRequest(c)
	page, err := a.Cache.Page(route)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(siteView(a.Config, route)))
		}
		return err
	}
	return Render(c, a.Views.Page(siteView(a.Config, route), pageView(a.Config, page)))
}

func (a *App) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	if strings.TrimSpace(q) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
	}
	results, err := a.Cache.Search(q, searchResultLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (a *App) handleSearchIndex(c echo.Context) error {
	index, err := a.Cache.Index()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, index)
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	body, err := sitemapXML(a.Config, pages)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (a *App) handleFeed(c echo.Context) error {
	pages, err := a.Cache.Pages()
	if err != nil {
		return err
	}
	body, err := feedXML(a.Config, pages)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.Config))
}

func (a *App) handleEmbeddedAsset(c echo.Context) error {
	name := strings.TrimPrefix(c.Request().URL.Path, "/assets/")
	data, err := EmbeddedAssets.ReadFile("embedded/" + name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	mime := "application/javascript; charset=utf-8"
	if strings.HasSuffix(name, ".css") {
		mime = "text/css; charset=utf-8"
	}
	return c.Blob(http.StatusOK, mime, data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	route := a.routeFromRequest(c)
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(siteView(a.Config, route)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(siteView(a.Config, route)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
