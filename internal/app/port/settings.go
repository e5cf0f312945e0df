package port

// SettingsStore is a key->string store. A missing key reports ok=false.
type SettingsStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
