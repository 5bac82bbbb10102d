package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	analyticsapp "github.com/tlsy/handicrafts/internal/application/analytics"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	"github.com/tlsy/handicrafts/internal/application/identity"
	inquiryapp "github.com/tlsy/handicrafts/internal/application/inquiry"
	profileapp "github.com/tlsy/handicrafts/internal/application/profile"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/auth"
	"github.com/tlsy/handicrafts/internal/infrastructure/logger"
	"github.com/tlsy/handicrafts/internal/interfaces/http/dto"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Admin session cookies, scoped to /admin
const (
	AdminAccessCookie  = "tlsy_admin_access"
	AdminRefreshCookie = "tlsy_admin_refresh"
)

const (
	adminHome            = "/admin"
	adminLoginPath       = "/admin/login"
	adminProductsPath    = "/admin/products"
	adminMessagesPath    = "/admin/messages"
	adminProfilePath     = "/admin/profile"
	adminListLimit       = 100
	adminDashboardWindow = 30 * 24 * time.Hour

	productImagesField = "new_images"
	profileImageField  = "profile_image"
)

// flash notices addressed by the ?notice= query after a redirect
var adminNotices = map[string]notice{
	"product_saved":   {Kind: "success", Message: "Product saved"},
	"product_deleted": {Kind: "success", Message: "Product deleted"},
	"message_deleted": {Kind: "success", Message: "Message deleted"},
	"profile_saved":   {Kind: "success", Message: "Profile updated"},
	"logged_out":      {Kind: "info", Message: "You have been logged out"},
	"not_found":       {Kind: "error", Message: "That item no longer exists"},
	"action_failed":   {Kind: "error", Message: "Something went wrong. Please try again"},
}

// AdminPagesConfig holds the admin panel settings
type AdminPagesConfig struct {
	SiteName string
	// SecureCookies sets the Secure flag on the session cookies
	SecureCookies bool
}

// AdminPageHandler renders the password-protected admin panel
type AdminPageHandler struct {
	auth     *identity.AuthService
	products *catalogapp.ProductService
	images   *catalogapp.ImageService
	contact  *inquiryapp.ContactService
	profile  *profileapp.ProfileService
	tracking *analyticsapp.TrackingService
	config   AdminPagesConfig
}

// NewAdminPageHandler creates a new AdminPageHandler
func NewAdminPageHandler(
	authService *identity.AuthService,
	products *catalogapp.ProductService,
	images *catalogapp.ImageService,
	contact *inquiryapp.ContactService,
	profile *profileapp.ProfileService,
	tracking *analyticsapp.TrackingService,
	cfg AdminPagesConfig,
) *AdminPageHandler {
	return &AdminPageHandler{
		auth:     authService,
		products: products,
		images:   images,
		contact:  contact,
		profile:  profile,
		tracking: tracking,
		config:   cfg,
	}
}

// adminPageData is the view model shared by every admin template
type adminPageData struct {
	Locale      shared.Locale
	SiteName    string
	Page        string
	Username    string
	Notice      *notice
	FieldErrors map[string]string

	Login      loginForm
	Dashboard  *analyticsapp.DashboardResponse
	Products   []catalogapp.ProductResponse
	Total      int64
	Query      string
	ProductID  string
	Form       productForm
	Categories []catalog.CategoryKey
	Messages   *inquiryapp.MessageListResponse
	Filters    []inquiry.ReadFilter
	Profile    profileForm
}

type loginForm struct {
	Username string `form:"username" binding:"required,max=100"`
	Password string `form:"password" binding:"required,max=200"`
	Next     string `form:"next"`
}

// productForm is the product editor; Images are the kept gallery URLs
type productForm struct {
	ProductName            string   `form:"product_name" binding:"required,max=200"`
	ProductNameTL          string   `form:"product_name_tl" binding:"max=200"`
	Description            string   `form:"description" binding:"max=5000"`
	DescriptionTL          string   `form:"description_tl" binding:"max=5000"`
	ShortDescription       string   `form:"short_description" binding:"max=500"`
	ShortDescriptionTL     string   `form:"short_description_tl" binding:"max=500"`
	Category               string   `form:"category" binding:"required,max=100"`
	Price                  string   `form:"price" binding:"required"`
	PriceNotes             string   `form:"price_notes" binding:"max=500"`
	PriceNotesTL           string   `form:"price_notes_tl" binding:"max=500"`
	TurnaroundTime         string   `form:"turnaround_time" binding:"max=100"`
	TurnaroundTimeTL       string   `form:"turnaround_time_tl" binding:"max=100"`
	CustomizationAvailable bool     `form:"customization_available"`
	Availability           bool     `form:"availability"`
	Featured               bool     `form:"featured"`
	Images                 []string `form:"images" binding:"max=12"`
}

func productFormFrom(p *catalogapp.ProductResponse) productForm {
	return productForm{
		ProductName:            p.ProductName,
		ProductNameTL:          p.ProductNameTL,
		Description:            p.Description,
		DescriptionTL:          p.DescriptionTL,
		ShortDescription:       p.ShortDescription,
		ShortDescriptionTL:     p.ShortDescriptionTL,
		Category:               p.Category,
		Price:                  p.Price.StringFixed(2),
		PriceNotes:             p.PriceNotes,
		PriceNotesTL:           p.PriceNotesTL,
		TurnaroundTime:         p.TurnaroundTime,
		TurnaroundTimeTL:       p.TurnaroundTimeTL,
		CustomizationAvailable: p.CustomizationAvailable,
		Availability:           p.Availability,
		Featured:               p.Featured,
		Images:                 p.Images,
	}
}

func (f productForm) request(price decimal.Decimal) catalogapp.ProductRequest {
	available := f.Availability
	return catalogapp.ProductRequest{
		ProductName:            f.ProductName,
		ProductNameTL:          f.ProductNameTL,
		Description:            f.Description,
		DescriptionTL:          f.DescriptionTL,
		ShortDescription:       f.ShortDescription,
		ShortDescriptionTL:     f.ShortDescriptionTL,
		Category:               f.Category,
		Price:                  price,
		PriceNotes:             f.PriceNotes,
		PriceNotesTL:           f.PriceNotesTL,
		Images:                 f.Images,
		TurnaroundTime:         f.TurnaroundTime,
		TurnaroundTimeTL:       f.TurnaroundTimeTL,
		CustomizationAvailable: f.CustomizationAvailable,
		Availability:           &available,
		Featured:               f.Featured,
	}
}

type profileForm struct {
	CrafterName       string `form:"crafter_name" binding:"required,max=200"`
	CrafterNameTL     string `form:"crafter_name_tl" binding:"max=200"`
	Bio               string `form:"bio" binding:"max=5000"`
	BioTL             string `form:"bio_tl" binding:"max=5000"`
	ShortBio          string `form:"short_bio" binding:"max=500"`
	ShortBioTL        string `form:"short_bio_tl" binding:"max=500"`
	BackgroundStory   string `form:"background_story" binding:"max=10000"`
	BackgroundStoryTL string `form:"background_story_tl" binding:"max=10000"`
	CraftingProcess   string `form:"crafting_process" binding:"max=10000"`
	CraftingProcessTL string `form:"crafting_process_tl" binding:"max=10000"`
	ProfileImageURL   string `form:"profile_image_url" binding:"omitempty,uri"`
	YearsExperience   int    `form:"years_experience" binding:"min=0,max=100"`
	Certifications    string `form:"certifications" binding:"max=1000"`
}

func profileFormFrom(p *profileapp.ProfileResponse) profileForm {
	return profileForm{
		CrafterName:       p.CrafterName,
		CrafterNameTL:     p.CrafterNameTL,
		Bio:               p.Bio,
		BioTL:             p.BioTL,
		ShortBio:          p.ShortBio,
		ShortBioTL:        p.ShortBioTL,
		BackgroundStory:   p.BackgroundStory,
		BackgroundStoryTL: p.BackgroundStoryTL,
		CraftingProcess:   p.CraftingProcess,
		CraftingProcessTL: p.CraftingProcessTL,
		ProfileImageURL:   p.ProfileImageURL,
		YearsExperience:   p.YearsExperience,
		Certifications:    strings.Join(p.Certifications, ", "),
	}
}

func (f profileForm) request() profileapp.UpdateProfileRequest {
	return profileapp.UpdateProfileRequest{
		CrafterName:       f.CrafterName,
		CrafterNameTL:     f.CrafterNameTL,
		Bio:               f.Bio,
		BioTL:             f.BioTL,
		ShortBio:          f.ShortBio,
		ShortBioTL:        f.ShortBioTL,
		BackgroundStory:   f.BackgroundStory,
		BackgroundStoryTL: f.BackgroundStoryTL,
		CraftingProcess:   f.CraftingProcess,
		CraftingProcessTL: f.CraftingProcessTL,
		ProfileImageURL:   f.ProfileImageURL,
		YearsExperience:   f.YearsExperience,
		Certifications:    f.Certifications,
	}
}

// RequireSession guards the admin pages with the access token cookie.
// When the access token is missing or no longer valid the refresh cookie is
// rotated and the request replayed; otherwise the visitor is sent to the login page.
func (h *AdminPageHandler) RequireSession(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) gin.HandlerFunc {
	return middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CookieName:     AdminAccessCookie,
		OnFailure:      h.sessionFailed,
		Logger:         log,
	})
}

func (h *AdminPageHandler) sessionFailed(c *gin.Context, _ error) {
	if refresh, err := c.Cookie(AdminRefreshCookie); err == nil && refresh != "" {
		result, err := h.auth.Refresh(c.Request.Context(), identity.RefreshTokenInput{RefreshToken: refresh})
		if err == nil {
			h.setSession(c, result)
			c.Redirect(http.StatusTemporaryRedirect, c.Request.URL.RequestURI())
			c.Abort()
			return
		}
	}

	h.clearSession(c)
	next := adminHome
	if c.Request.Method == http.MethodGet {
		next = c.Request.URL.RequestURI()
	}
	c.Redirect(http.StatusSeeOther, adminLoginPath+"?next="+url.QueryEscape(next))
	c.Abort()
}

func (h *AdminPageHandler) setSession(c *gin.Context, result *identity.TokenResult) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminAccessCookie, result.AccessToken, secondsUntil(result.AccessTokenExpiresAt),
		adminHome, "", h.config.SecureCookies, true)
	c.SetCookie(AdminRefreshCookie, result.RefreshToken, secondsUntil(result.RefreshTokenExpiresAt),
		adminHome, "", h.config.SecureCookies, true)
}

func (h *AdminPageHandler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminAccessCookie, "", -1, adminHome, "", h.config.SecureCookies, true)
	c.SetCookie(AdminRefreshCookie, "", -1, adminHome, "", h.config.SecureCookies, true)
}

func secondsUntil(t time.Time) int {
	s := int(time.Until(t).Seconds())
	if s < 1 {
		return 1
	}
	return s
}

// safeNext keeps post-login redirects inside the admin panel
func safeNext(next string) string {
	if !strings.HasPrefix(next, adminHome) || strings.HasPrefix(next, adminLoginPath) ||
		strings.ContainsAny(next, "\\\r\n") {
		return adminHome
	}
	return next
}

func (h *AdminPageHandler) newPage(c *gin.Context, page string) *adminPageData {
	data := &adminPageData{
		Locale:   shared.LocaleEnglish,
		SiteName: h.config.SiteName,
		Page:     page,
		Username: middleware.GetJWTUsername(c),
	}
	if n, ok := adminNotices[c.Query("notice")]; ok {
		data.Notice = &n
	}
	return data
}

func (h *AdminPageHandler) render(c *gin.Context, status int, data *adminPageData) {
	c.HTML(status, data.Page, data)
}

func (h *AdminPageHandler) renderError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Admin page failed", zap.Error(err))
	_ = c.Error(err)
	h.render(c, http.StatusInternalServerError, h.newPage(c, adminPageError))
}

// renderFormError re-renders a form with the error as a notice
func (h *AdminPageHandler) renderFormError(c *gin.Context, data *adminPageData, err error) {
	status := http.StatusInternalServerError
	message := adminNotices["action_failed"].Message

	var maxErr *http.MaxBytesError
	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &maxErr):
		status, message = http.StatusRequestEntityTooLarge, "Upload exceeds the maximum allowed size"
	case errors.As(err, &domainErr):
		status, message = dto.DomainErrorStatus(domainErr.Code), domainErr.Message
	default:
		logger.GetGinLogger(c).Error("Admin form failed", zap.Error(err))
		_ = c.Error(err)
	}
	data.Notice = &notice{Kind: "error", Message: message}
	h.render(c, status, data)
}

func (h *AdminPageHandler) redirect(c *gin.Context, path, noticeKey string) {
	if noticeKey != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "notice=" + noticeKey
	}
	c.Redirect(http.StatusSeeOther, path)
}

// actionFailed redirects back after a failed list action
func (h *AdminPageHandler) actionFailed(c *gin.Context, path string, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		h.redirect(c, path, "not_found")
		return
	}
	logger.GetGinLogger(c).Error("Admin action failed", zap.Error(err))
	_ = c.Error(err)
	h.redirect(c, path, "action_failed")
}

func adminID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// LoginPage renders the sign-in form
// GET /admin/login
func (h *AdminPageHandler) LoginPage(c *gin.Context) {
	data := h.newPage(c, adminPageLogin)
	data.Login.Next = safeNext(c.Query("next"))
	h.render(c, http.StatusOK, data)
}

// Login checks the credentials and starts a cookie session
// POST /admin/login
func (h *AdminPageHandler) Login(c *gin.Context) {
	data := h.newPage(c, adminPageLogin)

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		data.Login = loginForm{Username: form.Username, Next: safeNext(form.Next)}
		data.FieldErrors = fieldErrors(err)
		data.Notice = &notice{Kind: "error", Message: "Enter your username and password"}
		h.render(c, http.StatusBadRequest, data)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), identity.LoginInput{Username: form.Username, Password: form.Password})
	if err != nil {
		data.Login = loginForm{Username: form.Username, Next: safeNext(form.Next)}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			data.Notice = &notice{Kind: "error", Message: domainErr.Message}
			h.render(c, http.StatusUnauthorized, data)
			return
		}
		h.renderFormError(c, data, err)
		return
	}

	h.setSession(c, result)
	c.Redirect(http.StatusSeeOther, safeNext(form.Next))
}

// Logout revokes the session tokens and clears the cookies
// POST /admin/logout
func (h *AdminPageHandler) Logout(c *gin.Context) {
	input := identity.LogoutInput{}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.AccessTokenJTI = claims.ID
		input.AccessTokenTTL = claims.GetRemainingTTL()
	}
	if refresh, err := c.Cookie(AdminRefreshCookie); err == nil {
		input.RefreshToken = refresh
	}
	if err := h.auth.Logout(c.Request.Context(), input); err != nil {
		logger.GetGinLogger(c).Warn("Failed to revoke admin session", zap.Error(err))
	}

	h.clearSession(c)
	h.redirect(c, adminLoginPath, "logged_out")
}

// Dashboard renders the overview cards and traffic figures
// GET /admin
func (h *AdminPageHandler) Dashboard(c *gin.Context) {
	summary, err := h.tracking.Dashboard(c.Request.Context(), adminDashboardWindow)
	if err != nil {
		h.renderError(c, err)
		return
	}
	data := h.newPage(c, adminPageDashboard)
	data.Dashboard = summary
	h.render(c, http.StatusOK, data)
}

// Products renders the product table
// GET /admin/products?q=
func (h *AdminPageHandler) Products(c *gin.Context) {
	data := h.newPage(c, adminPageProducts)
	data.Query = strings.TrimSpace(c.Query("q"))

	page, err := h.products.List(c.Request.Context(), catalogapp.ListProductsQuery{
		PageSize: adminListLimit,
		Search:   data.Query,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	data.Products = page.Items
	data.Total = page.Total
	h.render(c, http.StatusOK, data)
}

// NewProduct renders an empty product editor
// GET /admin/products/new
func (h *AdminPageHandler) NewProduct(c *gin.Context) {
	data := h.newPage(c, adminPageProductForm)
	data.Categories = catalog.Categories
	data.Form = productForm{Category: catalog.DefaultCategory, Price: "0.00", Availability: true}
	h.render(c, http.StatusOK, data)
}

// CreateProduct saves a new product with its uploaded images
// POST /admin/products/new
func (h *AdminPageHandler) CreateProduct(c *gin.Context) {
	h.saveProduct(c, nil)
}

// EditProduct renders the editor for an existing product
// GET /admin/products/:id/edit
func (h *AdminPageHandler) EditProduct(c *gin.Context) {
	product, ok := h.loadProduct(c)
	if !ok {
		return
	}
	data := h.newPage(c, adminPageProductForm)
	data.Categories = catalog.Categories
	data.ProductID = product.ID.String()
	data.Form = productFormFrom(product)
	h.render(c, http.StatusOK, data)
}

// UpdateProduct saves the editor of an existing product
// POST /admin/products/:id/edit
func (h *AdminPageHandler) UpdateProduct(c *gin.Context) {
	product, ok := h.loadProduct(c)
	if !ok {
		return
	}
	h.saveProduct(c, product)
}

func (h *AdminPageHandler) loadProduct(c *gin.Context) (*catalogapp.ProductResponse, bool) {
	id, ok := adminID(c)
	if !ok {
		h.redirect(c, adminProductsPath, "not_found")
		return nil, false
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.actionFailed(c, adminProductsPath, err)
		return nil, false
	}
	return product, true
}

func (h *AdminPageHandler) saveProduct(c *gin.Context, existing *catalogapp.ProductResponse) {
	ctx := c.Request.Context()
	data := h.newPage(c, adminPageProductForm)
	data.Categories = catalog.Categories
	if existing != nil {
		data.ProductID = existing.ID.String()
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		data.Form = form
		data.FieldErrors = fieldErrors(err)
		data.Notice = &notice{Kind: "error", Message: "Please correct the highlighted fields"}
		h.render(c, http.StatusBadRequest, data)
		return
	}
	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil {
		data.Form = form
		data.FieldErrors = map[string]string{"price": "Price must be a number"}
		data.Notice = &notice{Kind: "error", Message: "Please correct the highlighted fields"}
		h.render(c, http.StatusBadRequest, data)
		return
	}

	uploaded, err := h.uploadImages(c, productImagesField)
	if err != nil {
		data.Form = form
		h.renderFormError(c, data, err)
		return
	}
	kept := form.Images
	form.Images = append(append([]string{}, kept...), uploaded...)

	req := form.request(price)
	if existing != nil {
		req.Specifications = existing.Specifications
		req.StockQuantity = existing.StockQuantity
		_, err = h.products.Update(ctx, existing.ID, req)
	} else {
		_, err = h.products.Create(ctx, req)
	}
	if err != nil {
		h.discardImages(c, uploaded)
		form.Images = kept
		data.Form = form
		h.renderFormError(c, data, err)
		return
	}

	h.redirect(c, adminProductsPath, "product_saved")
}

// ToggleFeatured flips the featured flag from the product table
// POST /admin/products/:id/toggle-featured
func (h *AdminPageHandler) ToggleFeatured(c *gin.Context) {
	id, ok := adminID(c)
	if !ok {
		h.redirect(c, adminProductsPath, "not_found")
		return
	}
	if _, err := h.products.ToggleFeatured(c.Request.Context(), id); err != nil {
		h.actionFailed(c, adminProductsPath, err)
		return
	}
	h.redirect(c, adminProductsPath, "product_saved")
}

// DeleteProduct deletes a product and its images
// POST /admin/products/:id/delete
func (h *AdminPageHandler) DeleteProduct(c *gin.Context) {
	id, ok := adminID(c)
	if !ok {
		h.redirect(c, adminProductsPath, "not_found")
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.actionFailed(c, adminProductsPath, err)
		return
	}
	h.redirect(c, adminProductsPath, "product_deleted")
}

// Messages renders the contact inbox
// GET /admin/messages?filter=all|unread|read
func (h *AdminPageHandler) Messages(c *gin.Context) {
	filter := inquiry.ParseReadFilter(c.Query("filter"))
	list, err := h.contact.List(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	data := h.newPage(c, adminPageMessages)
	data.Messages = list
	data.Filters = []inquiry.ReadFilter{inquiry.ReadFilterAll, inquiry.ReadFilterUnread, inquiry.ReadFilterRead}
	h.render(c, http.StatusOK, data)
}

func messagesPath(filter string) string {
	return adminMessagesPath + "?filter=" + string(inquiry.ParseReadFilter(filter))
}

// ToggleRead flips the read flag of a message
// POST /admin/messages/:id/toggle-read
func (h *AdminPageHandler) ToggleRead(c *gin.Context) {
	back := messagesPath(c.PostForm("filter"))
	id, ok := adminID(c)
	if !ok {
		h.redirect(c, back, "not_found")
		return
	}
	if _, err := h.contact.ToggleRead(c.Request.Context(), id); err != nil {
		h.actionFailed(c, back, err)
		return
	}
	h.redirect(c, back, "")
}

// DeleteMessage deletes a message
// POST /admin/messages/:id/delete
func (h *AdminPageHandler) DeleteMessage(c *gin.Context) {
	back := messagesPath(c.PostForm("filter"))
	id, ok := adminID(c)
	if !ok {
		h.redirect(c, back, "not_found")
		return
	}
	if err := h.contact.Delete(c.Request.Context(), id); err != nil {
		h.actionFailed(c, back, err)
		return
	}
	h.redirect(c, back, "message_deleted")
}

// ProfilePage renders the crafter profile editor
// GET /admin/profile
func (h *AdminPageHandler) ProfilePage(c *gin.Context) {
	p, err := h.profile.Get(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	data := h.newPage(c, adminPageProfile)
	data.Profile = profileFormFrom(p)
	h.render(c, http.StatusOK, data)
}

// UpdateProfile saves the profile and an optional new picture
// POST /admin/profile
func (h *AdminPageHandler) UpdateProfile(c *gin.Context) {
	data := h.newPage(c, adminPageProfile)

	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		data.Profile = form
		data.FieldErrors = fieldErrors(err)
		data.Notice = &notice{Kind: "error", Message: "Please correct the highlighted fields"}
		h.render(c, http.StatusBadRequest, data)
		return
	}

	uploaded, err := h.uploadImages(c, profileImageField)
	if err != nil {
		data.Profile = form
		h.renderFormError(c, data, err)
		return
	}
	previous := form.ProfileImageURL
	if len(uploaded) > 0 {
		form.ProfileImageURL = uploaded[0]
		h.discardImages(c, uploaded[1:])
	}

	if _, err := h.profile.Update(c.Request.Context(), form.request()); err != nil {
		h.discardImages(c, uploaded[:min(len(uploaded), 1)])
		form.ProfileImageURL = previous
		data.Profile = form
		h.renderFormError(c, data, err)
		return
	}
	if len(uploaded) > 0 && previous != "" && previous != form.ProfileImageURL {
		h.discardImages(c, []string{previous})
	}

	h.redirect(c, adminProfilePath, "profile_saved")
}

// uploadImages stores every file of a multipart field and returns their URLs.
// Nothing is kept when one upload fails.
func (h *AdminPageHandler) uploadImages(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	var urls []string
	for _, fh := range form.File[field] {
		u, err := h.uploadImage(c, fh)
		if err != nil {
			h.discardImages(c, urls)
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (h *AdminPageHandler) uploadImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	result, err := h.images.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, file)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// discardImages removes stored images best-effort
func (h *AdminPageHandler) discardImages(c *gin.Context, urls []string) {
	for _, u := range urls {
		if err := h.images.Delete(c.Request.Context(), u); err != nil {
			logger.GetGinLogger(c).Warn("Failed to remove image", zap.String("url", u), zap.Error(err))
		}
	}
}
