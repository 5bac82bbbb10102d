package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/i18n"
)

//go:embed templates/*.html templates/admin/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// layoutTemplate is the root template every page is rendered through
const layoutTemplate = "layout"

// storefront page names; each has a templates/<name>.html
const (
	pageHome     = "home"
	pageProducts = "products"
	pageProduct  = "product"
	pageAbout    = "about"
	pageContact  = "contact"
	pageShopee   = "shopee"
	pageNotFound = "not_found"
	pageError    = "error"
)

var storefrontPages = []string{
	pageHome, pageProducts, pageProduct, pageAbout,
	pageContact, pageShopee, pageNotFound, pageError,
}

// admin page names; each has a templates/admin/<name>.html
const (
	adminPageLogin       = "admin/login"
	adminPageDashboard   = "admin/dashboard"
	adminPageProducts    = "admin/products"
	adminPageProductForm = "admin/product_form"
	adminPageMessages    = "admin/messages"
	adminPageProfile     = "admin/profile"
	adminPageError       = "admin/error"
)

var adminPages = []string{
	adminPageLogin, adminPageDashboard, adminPageProducts, adminPageProductForm,
	adminPageMessages, adminPageProfile, adminPageError,
}

// PageRenderer renders storefront and admin pages. Each page gets its own
// template set of its layout plus the page body, so every page can define "content".
type PageRenderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*PageRenderer)(nil)

// NewPageRenderer parses the embedded templates with the translator's helpers
func NewPageRenderer(translator *i18n.Translator) (*PageRenderer, error) {
	funcs := templateFuncs(translator)
	pages := make(map[string]*template.Template, len(storefrontPages)+len(adminPages))
	parse := func(name, layout string) error {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layout, "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
		return nil
	}
	for _, name := range storefrontPages {
		if err := parse(name, "templates/layout.html"); err != nil {
			return nil, err
		}
	}
	for _, name := range adminPages {
		if err := parse(name, "templates/admin/layout.html"); err != nil {
			return nil, err
		}
	}
	return &PageRenderer{pages: pages}, nil
}

// Instance implements render.HTMLRender
func (r *PageRenderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		fallback := pageError
		if strings.HasPrefix(name, "admin/") {
			fallback = adminPageError
		}
		tmpl = r.pages[fallback]
	}
	return render.HTML{Template: tmpl, Name: layoutTemplate, Data: data}
}

// StaticFS returns the embedded stylesheet and script
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// productCard is the data of the shared product_card partial
type productCard struct {
	Locale  shared.Locale
	Product catalogapp.ProductResponse
}

func templateFuncs(translator *i18n.Translator) template.FuncMap {
	return template.FuncMap{
		"t": func(loc shared.Locale, key string, args ...any) string {
			return translator.T(loc, key, args...)
		},
		"price": func(loc shared.Locale, amount decimal.Decimal, code string) string {
			return translator.FormatPrice(loc, amount, code)
		},
		"title": func(loc shared.Locale, s string) string {
			return translator.Title(loc, s)
		},
		"path": func(loc shared.Locale, p string) string {
			return "/" + loc.String() + p
		},
		"card": func(loc shared.Locale, p catalogapp.ProductResponse) productCard {
			return productCard{Locale: loc, Product: p}
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"year": func() int {
			return time.Now().Year()
		},
		"paragraphs": func(s string) []string {
			var out []string
			for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		},
	}
}
