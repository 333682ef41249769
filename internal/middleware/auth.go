package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/corebank/ledger/pkg/tokenpkg"
	"github.com/corebank/ledger/pkg/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	// AuthorizationHeaderKey is the header carrying the bearer token.
	AuthorizationHeaderKey = "authorization"
	// AuthorizationTypeBearer is the only supported authorization scheme.
	AuthorizationTypeBearer = "bearer"
	// AuthorizationPayloadKey is the gin context key holding the verified caller identity.
	AuthorizationPayloadKey = "authorization_payload"
)

// AddAuthorization creates a token for the given caller identity and sets it
// on the request. Used by handler tests.
func AddAuthorization(
	t *testing.T,
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authorizationType string,
	userID int64,
	role string,
	customerID int64,
	duration time.Duration,
) {
	token, _, err := tokenMaker.CreateToken(userID, role, customerID, duration)
	require.NoError(t, err)

	authorizationHeader := fmt.Sprintf("%s %s", authorizationType, token)
	request.Header.Set(AuthorizationHeaderKey, authorizationHeader)
}

// AuthMiddleware verifies the bearer token and stores the caller identity in
// the gin context. The ledger core trusts this identity and does not
// re-authenticate.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(AuthorizationHeaderKey)
		if len(authorizationHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		authorizationType := strings.ToLower(fields[0])
		if authorizationType != AuthorizationTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authorizationType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		accessToken := fields[1]
		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthorizationPayloadKey, payload)
		ctx.Next()
	}
}
