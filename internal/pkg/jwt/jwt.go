package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/user"
)

// Service verifies access tokens issued by the external identity
// provider and extracts the acting user from request context.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ActorFromContext(ctx context.Context) (user.Actor, error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ActorFromContext reads identity claims placed in the context by the
// jwtauth verifier middleware.
func (j *JWTService) ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, user.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, user.ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return user.Actor{}, user.ErrInvalidToken
	}

	actor := user.Actor{
		UserID: userID,
		Role:   user.Role(roleStr),
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		actor.EmployeeID = employeeID
	}

	return actor, nil
}
