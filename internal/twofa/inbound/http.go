package inbound

import (
	"context"

	"github.com/shandysiswandi/twofa/internal/pkg/router"
	"github.com/shandysiswandi/twofa/internal/twofa/usecase"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.UserOutput, error)
	GetUser(ctx context.Context, in usecase.GetUserInput) (*usecase.UserOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error

	QRCode(ctx context.Context, in usecase.QRCodeInput) (*usecase.QRCodeOutput, error)
	Setup2FA(ctx context.Context, in usecase.Setup2FAInput) (*usecase.UserOutput, error)
	Verify2FA(ctx context.Context, in usecase.Verify2FAInput) (*usecase.UserOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, device DeviceResolver) {
	end := &HTTPEndpoint{uc: uc, device: device}

	// httprouter does not allow the static /v1/users/login next to
	// /v1/users/:id/2fa/..., so login hangs off the :id route.
	r.POST("/v1/users/:id", end.postUser)
	r.GET("/v1/users/:id", end.GetUser)
	r.DELETE("/v1/users/:id/logout", end.Logout)

	// 2FA (TOTP)
	r.GET("/v1/users/:id/2fa/qrcode", end.QRCode)
	r.POST("/v1/users/:id/2fa/setup", end.Setup2FA)
	r.POST("/v1/users/:id/2fa/verify", end.Verify2FA)
}
