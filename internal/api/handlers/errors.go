package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tonshowcase/showcase/internal/collage"
	"github.com/tonshowcase/showcase/internal/database/repositories"
	"github.com/tonshowcase/showcase/internal/initdata"
	"github.com/tonshowcase/showcase/internal/ownership"
)

var (
	ErrInvalidID      = errors.New("invalid id")
	ErrInvalidWallet  = errors.New("invalid wallet address")
	ErrForbidden      = errors.New("forbidden")
	ErrNotOwned       = errors.New("nft not owned by showcase owner")
	ErrEmptyShowcase  = errors.New("showcase has no nfts")
	ErrNoWallet       = errors.New("user has no connected wallet")
	ErrIdentityClaims = errors.New("init data user does not match telegram_id")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// MapError translates domain errors into an HTTP status and body.
func MapError(err error) (int, APIError) {
	switch {
	case errors.Is(err, initdata.ErrAuthenticationFailed):
		return http.StatusForbidden, APIError{Code: "invalid_init_data", Message: "invalid init data"}
	case errors.Is(err, ErrIdentityClaims):
		return http.StatusForbidden, APIError{Code: "identity_mismatch", Message: err.Error()}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, APIError{Code: "forbidden", Message: "not the showcase owner"}

	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "invalid id"}
	case errors.Is(err, ErrInvalidWallet):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "invalid wallet address"}
	case errors.Is(err, ErrNotOwned):
		return http.StatusBadRequest, APIError{Code: "not_owned", Message: err.Error()}
	case errors.Is(err, ErrEmptyShowcase):
		return http.StatusBadRequest, APIError{Code: "empty_showcase", Message: err.Error()}

	case errors.Is(err, repositories.ErrUserNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "user not found"}
	case errors.Is(err, repositories.ErrShowcaseNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "showcase not found"}
	case errors.Is(err, ErrNoWallet):
		return http.StatusNotFound, APIError{Code: "no_wallet", Message: err.Error()}

	case errors.Is(err, ownership.ErrNoData):
		return http.StatusServiceUnavailable, APIError{Code: "no_data", Message: "nft data temporarily unavailable"}
	case errors.Is(err, collage.ErrUnavailable):
		return http.StatusServiceUnavailable, APIError{Code: "collage_unavailable", Message: "collage service unavailable"}
	case errors.Is(err, collage.ErrRejected):
		return http.StatusBadGateway, APIError{Code: "collage_rejected", Message: "collage service rejected the request"}
	}
	return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
}

func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	status, body := MapError(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()})
}
