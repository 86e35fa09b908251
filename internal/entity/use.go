package entity

import "context"

// Driver is a scoped browser-automation handle acquired by a transform
// handler through the factory in its Use context. Acquire, use, and release
// all belong to the handler; the dispatcher only ever carries the factory.
type Driver interface {
	// Get navigates to url and returns the rendered page source.
	Get(ctx context.Context, url string) (string, error)
	Close() error
}

// DriverFactory acquires a fresh Driver. Implementations are provided by the
// serving layer; the engine never calls the factory itself.
type DriverFactory func(ctx context.Context) (Driver, error)

// Use is the caller-supplied execution context for a single dispatch. The
// dispatcher threads it through to the handler unchanged. Cancellation and
// timeouts travel on the context.Context of the dispatch call, not here.
type Use struct {
	Driver   DriverFactory
	Settings map[string]any
}

// Setting returns the named plugin setting, or (nil, false) when unset.
func (u *Use) Setting(key string) (any, bool) {
	if u == nil || u.Settings == nil {
		return nil, false
	}
	v, ok := u.Settings[key]
	return v, ok
}

// StringSetting returns the named setting when it is a string, else fallback.
func (u *Use) StringSetting(key, fallback string) string {
	if v, ok := u.Setting(key); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
