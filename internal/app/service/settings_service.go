package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// Settings keys.
const (
	KeyNetwork      = "selectedNetwork"
	KeyPaymasterURL = "paymasterUrl"
	KeyUsePaymaster = "usePaymaster"
)

// Defaults used when a key is absent.
const (
	DefaultNetwork      = entity.NetworkBaseSepolia
	DefaultUsePaymaster = true
)

var httpSchemeRegex = regexp.MustCompile(`^https?://`)

// SettingsService is the typed view over the key/value settings store.
type SettingsService struct {
	store  port.SettingsStore
	logger port.Logger
}

func NewSettingsService(store port.SettingsStore, logger port.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

// Load reads all settings, substituting defaults for absent or unreadable values.
func (s *SettingsService) Load() (entity.Settings, error) {
	settings := entity.Settings{Network: DefaultNetwork, UsePaymaster: DefaultUsePaymaster}

	if raw, ok, err := s.store.Get(KeyNetwork); err != nil {
		return settings, fmt.Errorf("read %s: %w", KeyNetwork, err)
	} else if ok {
		if n, perr := entity.ParseNetwork(raw); perr == nil {
			settings.Network = n
		} else {
			s.logger.Warn("Stored network is invalid, using default", "value", raw, "default", DefaultNetwork)
		}
	}

	if raw, ok, err := s.store.Get(KeyPaymasterURL); err != nil {
		return settings, fmt.Errorf("read %s: %w", KeyPaymasterURL, err)
	} else if ok {
		settings.PaymasterURL = raw
	}

	if raw, ok, err := s.store.Get(KeyUsePaymaster); err != nil {
		return settings, fmt.Errorf("read %s: %w", KeyUsePaymaster, err)
	} else if ok {
		if b, perr := strconv.ParseBool(raw); perr == nil {
			settings.UsePaymaster = b
		} else {
			s.logger.Warn("Stored paymaster flag is invalid, using default", "value", raw)
		}
	}

	return settings, nil
}

// Apply validates and persists the fields present in update, then returns the new settings.
func (s *SettingsService) Apply(update entity.SettingsUpdate) (entity.Settings, error) {
	if update.Network != nil {
		n, err := entity.ParseNetwork(*update.Network)
		if err != nil {
			return entity.Settings{}, &entity.ValidationError{Field: "network", Message: err.Error()}
		}
		normalized := n.String()
		update.Network = &normalized
	}
	if update.PaymasterURL != nil {
		trimmed := strings.TrimSpace(*update.PaymasterURL)
		if verr := ValidatePaymasterURL(trimmed); verr != nil {
			return entity.Settings{}, verr
		}
		update.PaymasterURL = &trimmed
	}

	if update.Network != nil {
		if err := s.store.Set(KeyNetwork, *update.Network); err != nil {
			return entity.Settings{}, fmt.Errorf("write %s: %w", KeyNetwork, err)
		}
	}
	if update.PaymasterURL != nil {
		if err := s.store.Set(KeyPaymasterURL, *update.PaymasterURL); err != nil {
			return entity.Settings{}, fmt.Errorf("write %s: %w", KeyPaymasterURL, err)
		}
	}
	if update.UsePaymaster != nil {
		if err := s.store.Set(KeyUsePaymaster, strconv.FormatBool(*update.UsePaymaster)); err != nil {
			return entity.Settings{}, fmt.Errorf("write %s: %w", KeyUsePaymaster, err)
		}
	}

	return s.Load()
}

// ValidatePaymasterURL accepts an empty value or an absolute http(s) URL.
func ValidatePaymasterURL(url string) *entity.ValidationError {
	err := validation.Validate(url,
		is.URL.Error("Paymaster URL is not a valid URL"),
		validation.Match(httpSchemeRegex).Error("Paymaster URL must start with http:// or https://"),
	)
	if err != nil {
		return &entity.ValidationError{Field: "paymasterUrl", Message: err.Error()}
	}
	return nil
}
