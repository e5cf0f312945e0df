package entity

// SponsorshipConfig describes how gas for a submission is sponsored.
// The zero value means no sponsorship fields are attached.
type SponsorshipConfig struct {
	Enabled           bool   `json:"enabled"`
	UseDefaultSponsor bool   `json:"useCdpPaymaster,omitempty"`
	PaymasterURL      string `json:"paymasterUrl,omitempty"`
	Warning           string `json:"warning,omitempty"`
}

// Attached reports whether any sponsorship field goes out with the request.
func (s SponsorshipConfig) Attached() bool {
	return s.Enabled && (s.UseDefaultSponsor || s.PaymasterURL != "")
}
