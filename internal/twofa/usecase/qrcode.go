package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/pkg/qrcode"
)

type QRCodeInput struct {
	UserID int64
}

type QRCodeOutput struct {
	QRCode string // data:image/png;base64,...
}

// QRCode returns the provisioning QR image of the user's secret. The secret
// is created on the first call and reused afterwards, so repeated calls
// render the same image.
func (s *Usecase) QRCode(ctx context.Context, in QRCodeInput) (*QRCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "QRCode")
	defer span.End()

	user, err := s.findUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	secret, err := s.getOrCreateSecret(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get or create totp secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	uri := s.totp.URI(user.Username, s.serviceName(), secret)

	img, err := qrcode.DataURI(uri, s.qrcodeSize())
	if err != nil {
		slog.ErrorContext(ctx, "failed to render qrcode", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &QRCodeOutput{QRCode: img}, nil
}
