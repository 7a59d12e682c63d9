package docsite

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes cmp as a 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes cmp as an HTML response with the given status code.
// Rendering streams straight into the response writer, so a component
// failure after the header is written cannot be turned into an error page.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(code)
	return cmp.Render(c.Request().Context(), res.Writer)
}
