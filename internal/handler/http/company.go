package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/storage"
)

// CompanyHandler handles tenant HTTP requests
type CompanyHandler interface {
	// Public endpoints
	Signup(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)

	// Authenticated endpoints
	GetMy(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
	ResyncMy(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
	AssignPlanMy(w http.ResponseWriter, r *http.Request)

	// Super-admin endpoints
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	AssignPlan(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
	jwtService     jwt.Service
	fileStorage    storage.FileStorage
	logoPolicy     storage.UploadPolicy
}

func NewCompanyHandler(companyService company.CompanyService, jwtService jwt.Service, fileStorage storage.FileStorage, logoPolicy storage.UploadPolicy) CompanyHandler {
	return &companyHandlerImpl{
		companyService: companyService,
		jwtService:     jwtService,
		fileStorage:    fileStorage,
		logoPolicy:     logoPolicy,
	}
}

// Signup registers a new tenant with its first admin user
// POST /api/v1/auth/signup - Public
func (h *companyHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var req company.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	resp, err := h.companyService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshExpiresAt))
	response.Created(w, "Company registered", resp)
}

// Refresh redeems a refresh token, from the body or the refresh cookie,
// for a new token pair
// POST /api/v1/auth/refresh - Public
func (h *companyHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromRequest(w, r)
	if !ok {
		return
	}
	if refreshToken == "" {
		response.Unauthorized(w, "refresh token is required")
		return
	}

	tokens, err := h.companyService.Refresh(r.Context(), refreshToken)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshExpiresAt))
	response.Success(w, tokens)
}

// Logout revokes the presented access and refresh tokens and clears the
// refresh cookie
// POST /api/v1/auth/logout - Public
func (h *companyHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromRequest(w, r)
	if !ok {
		return
	}
	accessToken := jwtauth.TokenFromHeader(r)

	if err := h.companyService.Logout(r.Context(), accessToken, refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	expired := h.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}

// refreshTokenFromRequest reads the refresh token from the JSON body,
// falling back to the refresh cookie. Returns false after writing an
// error response for a malformed body.
func (h *companyHandlerImpl) refreshTokenFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req company.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "invalid request body", nil)
		return "", false
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie("refresh_token"); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	return req.RefreshToken, true
}

// GetMy retrieves the caller's company
// GET /api/v1/companies/my - Authenticated
func (h *companyHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	c, err := h.companyService.GetByID(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// UpdateMy updates the caller's company profile and branding
// PUT /api/v1/companies/my - Admin only
func (h *companyHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	var req company.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := h.companyService.Update(r.Context(), companyID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	c, err := h.companyService.GetByID(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// ResyncMy re-derives the caller's feature snapshot from its plan
// POST /api/v1/companies/my/resync-features - Admin only
func (h *companyHandlerImpl) ResyncMy(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	c, err := h.companyService.ResyncFeatures(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Features resynced", c)
}

// UploadLogo stores a company logo and records its URL
// POST /api/v1/companies/my/logo - Admin only
func (h *companyHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	if err := r.ParseMultipartForm(h.logoPolicy.MaxFileSize); err != nil {
		response.BadRequest(w, "invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		response.BadRequest(w, "logo file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.logoPolicy.Check(header.Filename, contentType, header.Size); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	path := "logos/" + companyID + filepath.Ext(header.Filename)
	storedPath, err := h.fileStorage.Upload(r.Context(), file, path, contentType)
	if err != nil {
		response.InternalServerError(w, "failed to store logo")
		return
	}

	logoURL, err := h.fileStorage.GetURL(r.Context(), storedPath, 0)
	if err != nil {
		response.InternalServerError(w, "failed to resolve logo URL")
		return
	}

	if err := h.companyService.Update(r.Context(), companyID, company.UpdateCompanyRequest{LogoURL: &logoURL}); err != nil {
		response.HandleError(w, err)
		return
	}

	c, err := h.companyService.GetByID(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Logo uploaded", c)
}

// AssignPlanMy moves the caller's company to another plan
// PUT /api/v1/companies/my/plan - Admin only
func (h *companyHandlerImpl) AssignPlanMy(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	var req company.AssignPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	c, err := h.companyService.AssignPlan(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Plan changed", c)
}

// List retrieves every tenant
// GET /api/v1/super-admin/companies - Super-admin only
func (h *companyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, companies)
}

// GetByID retrieves a specific tenant
// GET /api/v1/super-admin/companies/{id} - Super-admin only
func (h *companyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "company ID is required", nil)
		return
	}

	c, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// UpdateStatus suspends or reactivates a tenant
// PATCH /api/v1/super-admin/companies/{id}/status - Super-admin only
func (h *companyHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "company ID is required", nil)
		return
	}

	var req company.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := h.companyService.UpdateStatus(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company status updated", nil)
}

// AssignPlan moves a tenant to another plan and resyncs its snapshot
// POST /api/v1/super-admin/companies/{id}/plan - Super-admin only
func (h *companyHandlerImpl) AssignPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "company ID is required", nil)
		return
	}

	var req company.AssignPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	c, err := h.companyService.AssignPlan(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Plan assigned", c)
}
