package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/scope"
)

const contextTokenKey = "actorToken"

// Claims represents the authorization claims transmitted via a JWT.
// The upstream issues tokens; this API only verifies and reads them to
// build the actor context (role checks are reflected, not enforced here).
type Claims struct {
	jwt.StandardClaims
	Username     string   `json:"username,omitempty"`
	Email        string   `json:"email,omitempty"`
	DepartmentID int      `json:"department_id,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	IsStaff      bool     `json:"is_staff,omitempty"`
	IsSuperuser  bool     `json:"is_superuser,omitempty"`
}

func configureAuth(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	})
}

// NewClaims builds the claims for an actor; used by the admin CLI and tests.
func NewClaims(actor scope.Actor, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(actor.ID),
			Audience:  "Dashboards",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:     actor.Username,
		Email:        actor.Email,
		DepartmentID: actor.DepartmentID,
		Roles:        actor.Roles,
		IsStaff:      actor.IsStaff,
		IsSuperuser:  actor.IsSuperuser,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(conf.SecretKey))
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextActor builds the actor context from the verified claims.
func getContextActor(ctx echo.Context) (scope.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return scope.Actor{}, err
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return scope.Actor{}, errUnauthorized
	}
	return scope.Actor{
		ID:           id,
		DepartmentID: claims.DepartmentID,
		Username:     claims.Username,
		Email:        claims.Email,
		Roles:        claims.Roles,
		IsStaff:      claims.IsStaff,
		IsSuperuser:  claims.IsSuperuser,
	}, nil
}
