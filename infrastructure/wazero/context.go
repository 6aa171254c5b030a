package wazero

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

type pluginNameKey struct{}

// WithPluginName records the name of the guest on whose behalf host
// functions run. The executor sets it when loading and calling plugins.
func WithPluginName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, pluginNameKey{}, name)
}

// PluginNameFromContext returns the name set by WithPluginName.
func PluginNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(pluginNameKey{}).(string)
	return name, ok && name != ""
}

// GetPluginName returns the plugin name on ctx, or the calling module's name.
func GetPluginName(ctx context.Context, mod api.Module) string {
	if name, ok := PluginNameFromContext(ctx); ok {
		return name
	}
	return mod.Name()
}
