package entity

// Settings is the typed view of the persisted key/value settings.
type Settings struct {
	Network      Network `json:"network"`
	PaymasterURL string  `json:"paymasterUrl"`
	UsePaymaster bool    `json:"usePaymaster"`
}

// SettingsUpdate carries the fields a client wants to change.
type SettingsUpdate struct {
	Network      *string `json:"network,omitempty"`
	PaymasterURL *string `json:"paymasterUrl,omitempty"`
	UsePaymaster *bool   `json:"usePaymaster,omitempty"`
}
