// Package configutil helps setting Viper defaults of nested configs.
package configutil

// SetDefault abstracts setting Viper defaults.
type SetDefault interface {
	SetDefault(key string, value any)
}

// SetDefaultFunc implements SetDefault.
type SetDefaultFunc func(key string, value any)

// SetDefault calls f, a nil f does nothing.
func (f SetDefaultFunc) SetDefault(key string, value any) {
	if f == nil {
		return
	}
	f(key, value)
}

// Prefix returns a SetDefault that sets every key below prefix in i,
// e.g. Prefix(v, "java").SetDefault("addr", x) sets "java.addr".
func Prefix(i SetDefault, prefix string) SetDefault {
	return SetDefaultFunc(func(key string, value any) {
		i.SetDefault(prefix+"."+key, value)
	})
}
