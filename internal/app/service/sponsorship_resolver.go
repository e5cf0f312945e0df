package service

import (
	"strings"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
)

// WarningMissingPaymasterURL is attached when mainnet sponsorship is requested without a URL.
const WarningMissingPaymasterURL = "Paymaster is enabled but no paymaster URL is set for this network; the operation will not be sponsored"

// SponsorshipResolver decides which sponsorship fields go out with a submission.
type SponsorshipResolver struct {
	logger port.Logger
}

func NewSponsorshipResolver(logger port.Logger) *SponsorshipResolver {
	return &SponsorshipResolver{logger: logger}
}

// Resolve is deterministic: identical inputs yield identical configs.
func (r *SponsorshipResolver) Resolve(usePaymaster bool, network entity.Network, paymasterURL string) entity.SponsorshipConfig {
	if !usePaymaster {
		return entity.SponsorshipConfig{}
	}
	if network.IsTestnet() {
		return entity.SponsorshipConfig{Enabled: true, UseDefaultSponsor: true}
	}

	paymasterURL = strings.TrimSpace(paymasterURL)
	if paymasterURL == "" {
		r.logger.Warn("Sponsorship requested without paymaster URL, submitting unsponsored", "network", network)
		return entity.SponsorshipConfig{Warning: WarningMissingPaymasterURL}
	}
	return entity.SponsorshipConfig{Enabled: true, PaymasterURL: paymasterURL}
}
