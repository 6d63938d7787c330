package audio

import (
	"context"

	"github.com/gordonklaus/portaudio"

	"govorun/internal/permission"
)

// DeviceAuthorizer разрешает запись, если в системе есть устройство ввода.
// На десктопе это единственный доступный признак доступа к микрофону.
type DeviceAuthorizer struct{}

// Authorize проверяет устройство ввода по умолчанию.
func (DeviceAuthorizer) Authorize(ctx context.Context) (permission.Status, error) {
	if err := ctx.Err(); err != nil {
		return permission.Unknown, err
	}

	if err := portaudio.Initialize(); err != nil {
		return permission.Unknown, err
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil || dev.MaxInputChannels == 0 {
		return permission.Denied, nil
	}
	return permission.Authorized, nil
}

// NewAuthorizer выбирает реализацию по режиму из конфигурации.
func NewAuthorizer(mode permission.Mode) permission.Authorizer {
	switch mode {
	case permission.ModeAlways:
		return permission.Fixed(permission.Authorized)
	case permission.ModeNever:
		return permission.Fixed(permission.Denied)
	default:
		return DeviceAuthorizer{}
	}
}
