package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// FeatureMiddleware gates routes on the tenant's entitlement snapshot.
type FeatureMiddleware struct {
	companyService company.CompanyService
}

func NewFeatureMiddleware(companyService company.CompanyService) *FeatureMiddleware {
	return &FeatureMiddleware{companyService: companyService}
}

// RequireFeature consults the company's entitlement snapshot on every
// request. The feature claims baked into access tokens are for client
// UI gating only; trusting them here would let a plan downgrade go
// unenforced until the token expires.
func (m *FeatureMiddleware) RequireFeature(featureCode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "unauthorized")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			companyID, ok := claims["company_id"].(string)
			if !ok || companyID == "" {
				response.Forbidden(w, "no company associated with this user")
				return
			}

			hasFeature, err := m.companyService.HasFeature(r.Context(), companyID, featureCode)
			if err != nil {
				response.InternalServerError(w, "failed to check feature access")
				return
			}
			if !hasFeature {
				response.HandleError(w, company.ErrFeatureNotAvailable)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
