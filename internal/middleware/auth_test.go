package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corebank/ledger/pkg/randompkg"
	"github.com/corebank/ledger/pkg/tokenpkg"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	userID := randompkg.Int64Between(1, 100)
	customerID := randompkg.Int64Between(1, 100)

	gin.SetMode(gin.TestMode)
	server := gin.New()

	authURL := "/auth"
	server.GET(
		authURL,
		AuthMiddleware(tokenMaker),
		func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{})
		},
	)

	testCases := []struct {
		name          string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthorizationTypeBearer, userID, "customer", customerID, time.Minute)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "unsupported", userID, "customer", customerID, time.Minute)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "InvalidAuthorizationFormat",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, "", userID, "customer", customerID, time.Minute)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				AddAuthorization(t, request, tokenMaker, AuthorizationTypeBearer, userID, "customer", customerID, -time.Minute)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodGet, authURL, nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)
			server.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestAuthMiddlewarePayload(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	userID := randompkg.Int64Between(1, 100)
	customerID := randompkg.Int64Between(1, 100)

	gin.SetMode(gin.TestMode)
	server := gin.New()

	server.GET(
		"/whoami",
		AuthMiddleware(tokenMaker),
		func(ctx *gin.Context) {
			payload := ctx.MustGet(AuthorizationPayloadKey).(*tokenpkg.Payload)
			ctx.String(http.StatusOK, fmt.Sprintf("%d:%d", payload.UserID, payload.CustomerID))
		},
	)

	recorder := httptest.NewRecorder()

	request, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)

	AddAuthorization(t, request, tokenMaker, AuthorizationTypeBearer, userID, "customer", customerID, time.Minute)
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, fmt.Sprintf("%d:%d", userID, customerID), recorder.Body.String())
}
