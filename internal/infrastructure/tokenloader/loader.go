package tokenloader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/utils"
)

// ErrUnknownToken is returned when a symbol is not in a network's registry.
var ErrUnknownToken = errors.New("unknown token")

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// TokenLoader is the read-only token registry.
// It is populated once at construction and never mutated afterwards.
type TokenLoader struct {
	tokens map[entity.Network][]entity.TokenInfo
}

var _ port.TokenProvider = (*TokenLoader)(nil)

// NewTokenLoader builds the registry from the built-in lists.
// A <network>.json file in tokenDirPath replaces that network's built-in list.
func NewTokenLoader(tokenDirPath string, loggerInfo func(msg string, args ...any), loggerWarn func(msg string, args ...any)) (*TokenLoader, error) {
	l := &TokenLoader{tokens: make(map[entity.Network][]entity.TokenInfo, len(builtinTokens))}

	for _, network := range entity.Networks() {
		tokens := builtinTokens[network]

		if tokenDirPath != "" {
			filePath := filepath.Join(tokenDirPath, network.String()+".json")
			fromFile, err := utils.LoadTokensFromJSON(filePath)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				loggerInfo("No token override file, using built-in tokens", "network", network, "path", filePath)
			case err != nil:
				return nil, err
			default:
				if err := validateTokens(fromFile); err != nil {
					return nil, fmt.Errorf("invalid token file %s: %w", filePath, err)
				}
				loggerInfo("Loaded token override file", "network", network, "path", filePath, "count", len(fromFile))
				tokens = fromFile
			}
		}

		copied := make([]entity.TokenInfo, len(tokens))
		for i, t := range tokens {
			t.Network = network
			copied[i] = t
		}
		if len(copied) == 0 {
			loggerWarn("Network has no tokens", "network", network)
		}
		l.tokens[network] = copied
	}

	return l, nil
}

func validateTokens(tokens []entity.TokenInfo) error {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t.Symbol == "" {
			return errors.New("token without symbol")
		}
		if !addressPattern.MatchString(t.Address) {
			return fmt.Errorf("token %s has invalid address %q", t.Symbol, t.Address)
		}
		key := strings.ToLower(t.Symbol)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate token symbol %s", t.Symbol)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// GetTokens returns a copy of the network's registry.
func (l *TokenLoader) GetTokens(network entity.Network) ([]entity.TokenInfo, error) {
	tokens, ok := l.tokens[network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownNetwork, network)
	}
	return append([]entity.TokenInfo(nil), tokens...), nil
}

// GetTokenBySymbol prefers an exact symbol match and falls back to a case-insensitive one.
func (l *TokenLoader) GetTokenBySymbol(network entity.Network, symbol string) (entity.TokenInfo, error) {
	tokens, ok := l.tokens[network]
	if !ok {
		return entity.TokenInfo{}, fmt.Errorf("%w: %q", entity.ErrUnknownNetwork, network)
	}
	for _, t := range tokens {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	for _, t := range tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, nil
		}
	}
	return entity.TokenInfo{}, fmt.Errorf("%w: %q on %s", ErrUnknownToken, symbol, network)
}
