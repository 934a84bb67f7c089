package inbound

import (
	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/pkg/router"
	"github.com/shandysiswandi/twofa/internal/twofa/usecase"
)

// HTTPEndpoint exposes the login and 2FA handlers.
type HTTPEndpoint struct {
	uc     uc
	device DeviceResolver
}

var errEndpointNotFound = goerror.NewBusiness("endpoint not found", goerror.CodeNotFound)

func (h *HTTPEndpoint) postUser(r *router.Request) (any, error) {
	if r.GetParam("id") != "login" {
		return nil, errEndpointNotFound
	}
	return h.Login(r)
}

// Login checks credentials and opens the session of the calling device.
// @Summary Login
// @Description Validates credentials and returns the user with the 2FA state of the calling device.
// @Tags Users
// @Accept json
// @Produce json
// @Param User-Agent header string false "Device identity"
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=UserResponse} "User and session"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 406 {object} router.errorResponse "Wrong password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		DeviceID: h.device.DeviceID(r),
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp), nil
}

// @Summary Get user
// @Description Returns the user and the 2FA state of the calling device. Session fields are null when the device has no session.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} router.successResponse{data=UserResponse} "User and session"
// @Failure 400 {object} router.errorResponse "Invalid user id"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/{id} [get]
func (h *HTTPEndpoint) GetUser(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetUser(r.Context(), usecase.GetUserInput{UserID: id, DeviceID: h.device.DeviceID(r)})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp), nil
}

// @Summary Logout
// @Description Deletes the session of the calling device.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} router.successResponse{data=LogoutResponse}
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/{id}/logout [delete]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{UserID: id, DeviceID: h.device.DeviceID(r)}); err != nil {
		return nil, err
	}

	return LogoutResponse{LoggedOut: true}, nil
}

// QRCode returns the provisioning QR image, creating the secret on first use.
// @Summary Get 2FA QR code
// @Tags Users, 2FA
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} router.successResponse{data=QRCodeResponse} "PNG data URI"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/{id}/2fa/qrcode [get]
func (h *HTTPEndpoint) QRCode(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.QRCode(r.Context(), usecase.QRCodeInput{UserID: id})
	if err != nil {
		return nil, err
	}

	return QRCodeResponse{QRCode: resp.QRCode}, nil
}

// @Summary Setup 2FA
// @Description Confirms the scanned secret. Turns on require_2fa and verifies the session of the calling device.
// @Tags Users, 2FA
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body OTPRequest true "TOTP code"
// @Success 200 {object} router.successResponse{data=UserResponse} "User and session"
// @Failure 400 {object} router.errorResponse "Session not found"
// @Failure 404 {object} router.errorResponse "User or secret not found"
// @Failure 406 {object} router.errorResponse "Invalid 2FA code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/{id}/2fa/setup [post]
func (h *HTTPEndpoint) Setup2FA(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req OTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Setup2FA(r.Context(), usecase.Setup2FAInput{
		UserID:   id,
		DeviceID: h.device.DeviceID(r),
		OTPToken: req.OTPToken,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp), nil
}

// @Summary Verify 2FA
// @Description Verifies the session of the calling device with a TOTP code.
// @Tags Users, 2FA
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body OTPRequest true "TOTP code"
// @Success 200 {object} router.successResponse{data=UserResponse} "User and session"
// @Failure 400 {object} router.errorResponse "Session not found"
// @Failure 404 {object} router.errorResponse "User or secret not found"
// @Failure 406 {object} router.errorResponse "Invalid 2FA code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /v1/users/{id}/2fa/verify [post]
func (h *HTTPEndpoint) Verify2FA(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req OTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify2FA(r.Context(), usecase.Verify2FAInput{
		UserID:   id,
		DeviceID: h.device.DeviceID(r),
		OTPToken: req.OTPToken,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp), nil
}
