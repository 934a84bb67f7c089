package inbound

import (
	"net/http"

	"github.com/shandysiswandi/twofa/internal/pkg/router"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

const maxDeviceIDLen = 512

// DeviceResolver names the client device a request comes from. The value is
// client supplied and not authenticated; it only scopes 2FA sessions.
type DeviceResolver interface {
	DeviceID(r *router.Request) string
}

// HeaderDevice reads the device id from a single request header.
type HeaderDevice struct {
	header string
}

// NewHeaderDevice returns a resolver for header, defaulting to User-Agent.
func NewHeaderDevice(header string) *HeaderDevice {
	if header == "" {
		header = "User-Agent"
	}
	return &HeaderDevice{header: http.CanonicalHeaderKey(header)}
}

func (d *HeaderDevice) DeviceID(r *router.Request) string {
	id := r.GetHeader(d.header)
	if id == "" {
		return entity.DeviceUnknown
	}
	if len(id) > maxDeviceIDLen {
		id = id[:maxDeviceIDLen]
	}
	return id
}
