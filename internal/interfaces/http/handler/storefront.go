package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	inquiryapp "github.com/tlsy/handicrafts/internal/application/inquiry"
	profileapp "github.com/tlsy/handicrafts/internal/application/profile"
	socialapp "github.com/tlsy/handicrafts/internal/application/social"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/logger"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// StorefrontConfig holds the site-wide settings of the public pages
type StorefrontConfig struct {
	SiteName      string
	DefaultLocale shared.Locale
}

// StorefrontHandler renders the public HTML pages
type StorefrontHandler struct {
	products *catalogapp.ProductService
	profile  *profileapp.ProfileService
	contact  *inquiryapp.ContactService
	social   *socialapp.SocialService
	matcher  middleware.LanguageMatcher
	config   StorefrontConfig
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(
	products *catalogapp.ProductService,
	profile *profileapp.ProfileService,
	contact *inquiryapp.ContactService,
	social *socialapp.SocialService,
	matcher middleware.LanguageMatcher,
	cfg StorefrontConfig,
) *StorefrontHandler {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = shared.DefaultLocale
	}
	return &StorefrontHandler{
		products: products,
		profile:  profile,
		contact:  contact,
		social:   social,
		matcher:  matcher,
		config:   cfg,
	}
}

// pageData is the view model shared by every storefront template
type pageData struct {
	Locale      shared.Locale
	SiteName    string
	Page        string
	Path        string
	Languages   []languageLink
	SocialLinks []socialapp.SocialLinkResponse
	ShopeeURL   string

	Categories []categoryLink
	Category   string
	Query      string
	Products   []catalogapp.ProductResponse
	Product    *catalogapp.ProductResponse
	Profile    *profileapp.ProfileResponse

	Form        inquiryapp.SubmitContactRequest
	Notice      *notice
	FieldErrors map[string]string
}

type languageLink struct {
	Locale shared.Locale
	Href   string
	Active bool
}

type categoryLink struct {
	Key    catalog.CategoryKey
	Href   string
	Active bool
}

type notice struct {
	Kind    string
	Message string
}

// Root redirects / to the visitor's language
// GET /
func (h *StorefrontHandler) Root(c *gin.Context) {
	loc := middleware.ResolveLocale(c, h.matcher, h.config.DefaultLocale)
	c.Redirect(http.StatusFound, "/"+loc.String()+"/")
}

// RequireLocale guards the /:locale group. Unsupported or non-canonical
// locales are redirected to the same path under the default locale.
func (h *StorefrontHandler) RequireLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("locale")
		loc, ok := shared.ParseLocale(raw)
		if !ok || raw != loc.String() {
			if !ok {
				loc = shared.DefaultLocale
			}
			status := http.StatusFound
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				status = http.StatusTemporaryRedirect
			}
			c.Redirect(status, replaceLocale(c.Request.URL.Path, c.Request.URL.RawQuery, loc))
			c.Abort()
			return
		}

		c.Set(middleware.LocaleKey, loc)
		middleware.SetLocaleCookie(c, loc)
		c.Next()
	}
}

// replaceLocale swaps the first path segment for loc
func replaceLocale(path, rawQuery string, loc shared.Locale) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[i:]
	} else {
		rest = "/"
	}
	target := "/" + loc.String() + rest
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// newPage fills the layout fields of a page
func (h *StorefrontHandler) newPage(c *gin.Context, page string) *pageData {
	loc := middleware.GetLocale(c)
	path := strings.TrimPrefix(c.Request.URL.Path, "/"+loc.String())
	if path == "" {
		path = "/"
	}

	data := &pageData{
		Locale:   loc,
		SiteName: h.config.SiteName,
		Page:     page,
		Path:     path,
	}
	for _, l := range shared.SupportedLocales {
		href := "/" + l.String() + path
		if c.Request.URL.RawQuery != "" && c.Request.Method == http.MethodGet {
			href += "?" + c.Request.URL.RawQuery
		}
		data.Languages = append(data.Languages, languageLink{Locale: l, Href: href, Active: l == loc})
	}

	links, err := h.social.ListActive(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Warn("Failed to load social links", zap.Error(err))
	}
	data.SocialLinks = links
	return data
}

func (h *StorefrontHandler) render(c *gin.Context, status int, page string, data *pageData) {
	c.HTML(status, page, data)
}

func (h *StorefrontHandler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, pageNotFound, h.newPage(c, pageNotFound))
}

func (h *StorefrontHandler) renderError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Storefront page failed", zap.Error(err))
	_ = c.Error(err)
	h.render(c, http.StatusInternalServerError, pageError, h.newPage(c, pageError))
}

func (h *StorefrontHandler) categoryLinks(loc shared.Locale, active catalog.CategoryKey) []categoryLink {
	keys := append([]catalog.CategoryKey{catalog.CategoryAll}, catalog.Categories...)
	links := make([]categoryLink, 0, len(keys))
	for _, key := range keys {
		href := "/" + loc.String() + "/products"
		if key != catalog.CategoryAll {
			href += "?category=" + string(key)
		}
		links = append(links, categoryLink{Key: key, Href: href, Active: key == active})
	}
	return links
}

// Home renders the hero, the category tiles and the featured products
// GET /:locale/
func (h *StorefrontHandler) Home(c *gin.Context) {
	featured, err := h.products.ListFeatured(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := h.newPage(c, pageHome)
	data.Categories = h.categoryLinks(data.Locale, "")[1:]
	data.Products = featured
	h.render(c, http.StatusOK, pageHome, data)
}

// Products renders the filtered product list
// GET /:locale/products?category=&q=
func (h *StorefrontHandler) Products(c *gin.Context) {
	data := h.newPage(c, pageProducts)
	data.Query = strings.TrimSpace(c.Query("q"))
	key := catalog.ParseCategoryKey(c.Query("category"))
	data.Category = string(key)
	data.Categories = h.categoryLinks(data.Locale, key)

	products, err := h.products.ListPublic(c.Request.Context(), data.Category, data.Query, data.Locale)
	if err != nil {
		h.renderError(c, err)
		return
	}
	data.Products = products
	h.render(c, http.StatusOK, pageProducts, data)
}

// Product renders one available product
// GET /:locale/products/:id
func (h *StorefrontHandler) Product(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.renderNotFound(c)
		return
	}

	product, err := h.products.GetPublic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderError(c, err)
		return
	}

	data := h.newPage(c, pageProduct)
	data.Product = product
	h.render(c, http.StatusOK, pageProduct, data)
}

// About renders the crafter profile
// GET /:locale/about
func (h *StorefrontHandler) About(c *gin.Context) {
	p, err := h.profile.Get(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := h.newPage(c, pageAbout)
	data.Profile = p
	h.render(c, http.StatusOK, pageAbout, data)
}

// Contact renders the inquiry form; ?subject= prefills the subject
// GET /:locale/contact
func (h *StorefrontHandler) Contact(c *gin.Context) {
	data := h.newPage(c, pageContact)
	data.Form.Subject = c.Query("subject")
	data.Form.LanguagePreference = data.Locale.String()
	h.render(c, http.StatusOK, pageContact, data)
}

// SubmitContact handles the form post and re-renders the page with the outcome
// POST /:locale/contact
func (h *StorefrontHandler) SubmitContact(c *gin.Context) {
	data := h.newPage(c, pageContact)

	var form inquiryapp.SubmitContactRequest
	if err := c.ShouldBind(&form); err != nil {
		data.Form = form
		data.FieldErrors = fieldErrors(err)
		data.Notice = &notice{Kind: "error", Message: "contact.error"}
		h.render(c, http.StatusBadRequest, pageContact, data)
		return
	}
	if form.LanguagePreference == "" {
		form.LanguagePreference = data.Locale.String()
	}

	_, err := h.contact.Submit(c.Request.Context(), form)
	switch {
	case err == nil:
		data.Form = inquiryapp.SubmitContactRequest{LanguagePreference: form.LanguagePreference}
		data.Notice = &notice{Kind: "success", Message: "contact.success"}
		h.render(c, http.StatusOK, pageContact, data)
	case errors.Is(err, inquiryapp.ErrDuplicateSubmission):
		data.Form = form
		data.Notice = &notice{Kind: "info", Message: "contact.duplicate"}
		h.render(c, http.StatusOK, pageContact, data)
	default:
		var domainErr *shared.DomainError
		status := http.StatusBadRequest
		if !errors.As(err, &domainErr) {
			logger.GetGinLogger(c).Error("Contact submission failed", zap.Error(err))
			status = http.StatusInternalServerError
		}
		data.Form = form
		data.Notice = &notice{Kind: "error", Message: "contact.error"}
		h.render(c, status, pageContact, data)
	}
}

// Shopee renders the Shopee store page
// GET /:locale/shopee
func (h *StorefrontHandler) Shopee(c *gin.Context) {
	data := h.newPage(c, pageShopee)
	data.ShopeeURL = h.social.ShopeeURL(c.Request.Context())
	h.render(c, http.StatusOK, pageShopee, data)
}

// NotFound renders the 404 page for unmatched routes
func (h *StorefrontHandler) NotFound(c *gin.Context) {
	if _, ok := c.Get(middleware.LocaleKey); !ok {
		c.Set(middleware.LocaleKey, middleware.ResolveLocale(c, h.matcher, h.config.DefaultLocale))
	}
	h.renderNotFound(c)
}

// fieldErrors maps form field names to their validation messages
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	for _, d := range middleware.FormatValidationErrors(err, "").Error.Details {
		out[d.Field] = d.Message
	}
	return out
}
