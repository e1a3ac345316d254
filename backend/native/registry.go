package native

import (
	"sync"

	"github.com/gogpu/compositor/surface"
	"github.com/gogpu/gpucontext"
)

// Name is the registry name of the native backend.
const Name = "native"

var (
	providerMu sync.RWMutex
	provider   gpucontext.DeviceProvider
)

// SetDeviceProvider installs the device the registered "native" backend is
// created on. Until a provider is installed the backend reports itself
// unavailable and surface.NewBackend falls back to the CPU backend.
// A nil provider uninstalls it.
func SetDeviceProvider(p gpucontext.DeviceProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

func currentProvider() gpucontext.DeviceProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider
}

func init() {
	surface.Register(Name, 100,
		func(opts surface.Options) (surface.Backend, error) {
			b, err := NewFromProvider(currentProvider(), opts)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		func() bool { return currentProvider() != nil },
	)
}
