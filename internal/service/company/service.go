package company

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/obs"
)

type companyServiceImpl struct {
	companyRepo company.CompanyRepository
	planRepo    plan.PlanRepository
	userRepo    user.UserRepository
	txMgr       database.TxManager
	jwtService  jwt.Service
	logger      *slog.Logger
}

func NewCompanyService(
	companyRepo company.CompanyRepository,
	planRepo plan.PlanRepository,
	userRepo user.UserRepository,
	txMgr database.TxManager,
	jwtService jwt.Service,
	logger *slog.Logger,
) company.CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
		txMgr:       txMgr,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (s *companyServiceImpl) Signup(ctx context.Context, req company.SignupRequest) (company.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return company.SignupResponse{}, err
	}

	if _, err := s.companyRepo.GetByDomain(ctx, req.Domain); err == nil {
		return company.SignupResponse{}, company.ErrDomainExists
	} else if !errors.Is(err, company.ErrCompanyNotFound) {
		return company.SignupResponse{}, err
	}

	defaultPlan, err := s.planRepo.GetDefault(ctx)
	if err != nil {
		return company.SignupResponse{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return company.SignupResponse{}, err
	}

	features, limits := plan.ResolveEntitlements(defaultPlan)

	var created company.Company
	var admin user.User
	err = s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.companyRepo.Create(txCtx, company.Company{
			Name:           req.CompanyName,
			Domain:         req.Domain,
			PlanID:         defaultPlan.ID,
			Features:       features,
			Limits:         limits,
			FeatureVersion: 1,
			Status:         company.StatusTrial,
		})
		if err != nil {
			return err
		}

		admin, err = s.userRepo.Create(txCtx, user.User{
			CompanyID:    created.ID,
			Email:        req.AdminEmail,
			PasswordHash: string(passwordHash),
			Role:         user.RoleAdmin,
			IsActive:     true,
		})
		return err
	})
	if err != nil {
		return company.SignupResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(
		admin.ID, admin.Email, &created.ID, admin.Role,
		&jwt.EntitlementClaims{
			Features:       created.Features.EnabledCodes(),
			FeatureVersion: created.FeatureVersion,
		},
	)
	if err != nil {
		return company.SignupResponse{}, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(admin.ID)
	if err != nil {
		return company.SignupResponse{}, err
	}

	s.logger.Info("company signed up",
		"company_id", created.ID, "domain", created.Domain, "plan", defaultPlan.Name)

	return company.SignupResponse{
		Company:          toCompanyResponse(created),
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *companyServiceImpl) Refresh(ctx context.Context, refreshToken string) (company.AuthTokensResponse, error) {
	if refreshToken == "" || s.jwtService.IsTokenRevoked(refreshToken) {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}

	tok, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}
	claims, err := tok.AsMap(ctx)
	if err != nil {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return company.AuthTokensResponse{}, company.ErrInvalidRefreshToken
	}

	// Super admins have no company; everyone else gets the current
	// entitlement snapshot baked into the new access token.
	var companyID *string
	var ent *jwt.EntitlementClaims
	if u.CompanyID != "" {
		c, err := s.companyRepo.GetByID(ctx, u.CompanyID)
		if err != nil {
			return company.AuthTokensResponse{}, err
		}
		companyID = &c.ID
		ent = &jwt.EntitlementClaims{
			Features:       c.Features.EnabledCodes(),
			FeatureVersion: c.FeatureVersion,
		}
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, companyID, u.Role, ent)
	if err != nil {
		return company.AuthTokensResponse{}, err
	}
	newRefreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return company.AuthTokensResponse{}, err
	}

	// Rotation: the presented refresh token is single-use.
	s.jwtService.RevokeToken(refreshToken)

	s.logger.Info("tokens refreshed", "user_id", u.ID)

	return company.AuthTokensResponse{
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *companyServiceImpl) Logout(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		s.jwtService.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *companyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(c), nil
}

func (s *companyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]company.CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = toCompanyResponse(c)
	}
	return responses, nil
}

func (s *companyServiceImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.companyRepo.Update(ctx, id, req)
}

func (s *companyServiceImpl) UpdateStatus(ctx context.Context, id string, req company.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.companyRepo.UpdateStatus(ctx, id, company.CompanyStatus(req.Status))
}

func (s *companyServiceImpl) AssignPlan(ctx context.Context, id string, req company.AssignPlanRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	newPlan, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if !newPlan.IsActive {
		return company.CompanyResponse{}, plan.ErrPlanNotActive
	}

	err = s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.SetPlan(txCtx, id, newPlan.ID); err != nil {
			return err
		}
		return s.resync(txCtx, id, newPlan)
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	s.logger.Info("plan assigned", "company_id", id, "plan_id", newPlan.ID, "plan", newPlan.Name)
	return s.GetByID(ctx, id)
}

func (s *companyServiceImpl) ResyncFeatures(ctx context.Context, id string) (company.CompanyResponse, error) {
	err := s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.companyRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		p, err := s.planRepo.GetByID(txCtx, c.PlanID)
		if err != nil {
			return err
		}
		return s.resync(txCtx, id, p)
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return s.GetByID(ctx, id)
}

// resync is the only code path that writes the feature snapshot. Every
// plan change funnels through here so concurrent writers cannot clobber
// each other's snapshots.
func (s *companyServiceImpl) resync(ctx context.Context, companyID string, p plan.Plan) error {
	features, limits := plan.ResolveEntitlements(p)
	version, err := s.companyRepo.SyncEntitlements(ctx, companyID, features, limits)
	if err != nil {
		return err
	}
	obs.CountFeatureResync()
	s.logger.Info("features resynced", "company_id", companyID, "plan_id", p.ID, "feature_version", version)
	return nil
}

func (s *companyServiceImpl) HasFeature(ctx context.Context, companyID string, featureCode string) (bool, error) {
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	if !c.IsOperational() {
		return false, nil
	}
	return c.Features.Enabled(featureCode), nil
}

func toCompanyResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Domain:         c.Domain,
		PlanID:         c.PlanID,
		Features:       c.Features,
		Limits:         c.Limits,
		FeatureVersion: c.FeatureVersion,
		Status:         string(c.Status),
		LogoURL:        c.LogoURL,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		RegistrationNo: c.RegistrationNo,
		TaxID:          c.TaxID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
