package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// AdminLogin renders the admin password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		adminHead(&b, "Login")
		b.WriteString(`<main class="admin"><h1>docsite admin</h1>`)
		if showError {
			b.WriteString(`<p class="admin-error">Wrong password.</p>`)
		}
		b.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(&b, csrfToken)
		b.WriteString(`<input type="password" name="password" autofocus>`)
		b.WriteString(`<button type="submit">Sign in</button></form></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AdminDashboard lists every content page with edit links.
func AdminDashboard(pages []PageRow, message, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		adminHead(&b, "Pages")
		b.WriteString(`<main class="admin"><h1>Pages</h1>`)
		if message != "" {
			b.WriteString(`<p class="admin-message">` + esc(message) + `</p>`)
		}
		b.WriteString(`<p><a href="/admin/images/">Images</a> · <form class="inline" method="post" action="/admin/logout/">`)
		csrfField(&b, csrfToken)
		b.WriteString(`<button type="submit">Sign out</button></form></p>`)
		b.WriteString(`<table class="admin-pages"><thead><tr><th>Title</th><th>Route</th><th>Updated</th></tr></thead><tbody>`)
		for _, p := range pages {
			b.WriteString(`<tr><td><a href="/admin/edit/` + esc(p.SourcePath) + `">` + esc(p.Title) + `</a></td>`)
			b.WriteString(`<td><a href="` + esc(p.Route) + `">` + esc(p.Route) + `</a></td>`)
			b.WriteString(`<td>` + esc(p.UpdatedAt) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AdminEdit renders the raw-markdown editor for one source file.
func AdminEdit(sourcePath, raw, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		adminHead(&b, sourcePath)
		b.WriteString(`<main class="admin"><h1>` + esc(sourcePath) + `</h1>`)
		b.WriteString(`<form method="post" action="/admin/save/">`)
		csrfField(&b, csrfToken)
		b.WriteString(`<input type="hidden" name="path" value="` + esc(sourcePath) + `">`)
		b.WriteString(`<textarea name="content" rows="30" spellcheck="false">` + esc(raw) + `</textarea>`)
		b.WriteString(`<button type="submit">Save</button> <a href="/admin/">Cancel</a></form></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AdminImages lists uploaded images with an upload form.
func AdminImages(images []ImageRow, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		adminHead(&b, "Images")
		b.WriteString(`<main class="admin"><h1>Images</h1><p><a href="/admin/">Pages</a></p>`)
		b.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(&b, csrfToken)
		b.WriteString(`<input type="file" name="image" accept="image/*"><button type="submit">Upload</button></form>`)
		b.WriteString(`<ul class="admin-images">`)
		for _, img := range images {
			b.WriteString(`<li><a href="/public/uploads/` + esc(img.Filename) + `">` + esc(img.Filename) + `</a> `)
			b.WriteString(esc(strconv.Itoa(img.Width)) + `×` + esc(strconv.Itoa(img.Height)) + `, ` + esc(strconv.Itoa(img.Size)) + ` bytes`)
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul></main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func adminHead(b *strings.Builder, title string) {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<meta name="robots" content="noindex">`)
	b.WriteString(`<title>` + esc(title) + ` | docsite admin</title>`)
	b.WriteString(`<link rel="stylesheet" href="/assets/docsite.css"></head><body>`)
}

func csrfField(b *strings.Builder, token string) {
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `">`)
}
