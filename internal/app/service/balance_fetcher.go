package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/metrics"
	"smartaccount_playground/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const displayDecimals = 6

type balanceTarget struct {
	address string
	network entity.Network
}

// BalanceFetcher keeps the latest balance snapshot of the connected account.
// Every fetch gets a generation number and only the newest generation is applied.
type BalanceFetcher struct {
	balances port.BalanceClient
	prices   port.PriceClient
	tokens   port.TokenProvider
	logger   port.Logger
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	generation uint64
	target     balanceTarget
	latest     entity.BalanceSnapshot
}

var _ port.BalanceService = (*BalanceFetcher)(nil)

func NewBalanceFetcher(
	balances port.BalanceClient,
	prices port.PriceClient,
	tokens port.TokenProvider,
	logger port.Logger,
	interval time.Duration,
) *BalanceFetcher {
	return &BalanceFetcher{
		balances: balances,
		prices:   prices,
		tokens:   tokens,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Fetch runs the balance and price lookups concurrently and merges them.
// A price failure is logged and ignored. A balance failure yields an all-zero list and the error.
func (f *BalanceFetcher) Fetch(ctx context.Context, address string, network entity.Network, tokens []entity.TokenInfo) ([]entity.TokenBalance, error) {
	var (
		entries []entity.BalanceLookupEntry
		prices  map[string]*float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = f.balances.GetBalances(gctx, address, network)
		if err != nil {
			return fmt.Errorf("balance lookup: %w", err)
		}
		return nil
	})

	priceIDs := make([]string, 0, len(tokens))
	for _, t := range tokens {
		priceIDs = append(priceIDs, t.PriceID)
	}
	priceIDs = utils.UniqueStrings(priceIDs)
	if len(priceIDs) > 0 {
		g.Go(func() error {
			p, err := f.prices.GetPrices(gctx, priceIDs)
			if err != nil {
				metrics.PriceLookupFailures.Inc()
				f.logger.Warn("Price lookup failed, continuing without USD values", "network", network, "error", err)
				return nil
			}
			prices = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ZeroBalances(tokens), err
	}
	return MergeBalances(tokens, entries, prices, f.logger), nil
}

// MergeBalances matches each requested token with its reported balance.
// Tokens without a matching entry get a zero balance.
func MergeBalances(tokens []entity.TokenInfo, entries []entity.BalanceLookupEntry, prices map[string]*float64, logger port.Logger) []entity.TokenBalance {
	out := make([]entity.TokenBalance, 0, len(tokens))
	for _, token := range tokens {
		raw := new(big.Int)
		decimals := token.Decimals

		for _, e := range entries {
			if !token.MatchesContract(e.Token.ContractAddress) {
				continue
			}
			parsed, err := utils.ParseInteger(e.Amount.Amount)
			if err != nil {
				logger.Warn("Ignoring malformed balance amount", "token", token.Symbol, "amount", e.Amount.Amount, "error", err)
				break
			}
			raw = parsed
			if e.Amount.Decimals != nil {
				decimals = *e.Amount.Decimals
			}
			break
		}

		formatted := utils.FormatUnits(raw, decimals)
		tb := entity.TokenBalance{
			Token:            token,
			RawBalance:       raw,
			FormattedBalance: formatted,
			DisplayBalance:   utils.TruncateDecimals(formatted, displayDecimals),
		}
		if price := prices[token.PriceID]; token.PriceID != "" && price != nil {
			p := *price
			tb.PriceUSD = &p
			tb.USDValue = utils.CalculateValueUSD(raw, decimals, p)
			tb.DisplayUSD = utils.FormatUSD(tb.USDValue)
		}
		out = append(out, tb)
	}
	return out
}

// ZeroBalances is the fallback list used when the balance lookup fails.
func ZeroBalances(tokens []entity.TokenInfo) []entity.TokenBalance {
	out := make([]entity.TokenBalance, len(tokens))
	for i, t := range tokens {
		out[i] = entity.TokenBalance{Token: t, RawBalance: new(big.Int), FormattedBalance: "0", DisplayBalance: "0"}
	}
	return out
}

// SetTarget switches the watched account or network and refreshes when it changed.
func (f *BalanceFetcher) SetTarget(ctx context.Context, address string, network entity.Network) (entity.BalanceSnapshot, error) {
	f.mu.Lock()
	next := balanceTarget{address: address, network: network}
	changed := f.target != next
	f.target = next
	f.mu.Unlock()

	if !changed {
		return f.Latest(), nil
	}
	f.logger.Info("Balance target changed", "address", entity.ShortAddress(address), "network", network)
	return f.Refresh(ctx)
}

// Refresh fetches balances for the current target. Manual and timer refreshes share this path.
func (f *BalanceFetcher) Refresh(ctx context.Context) (entity.BalanceSnapshot, error) {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	target := f.target
	f.mu.Unlock()

	snapshot := entity.BalanceSnapshot{
		Address:    target.address,
		Network:    target.network,
		Generation: gen,
	}

	tokens, err := f.tokens.GetTokens(target.network)
	if err != nil {
		return snapshot, fmt.Errorf("token registry: %w", err)
	}

	var fetchErr error
	start := f.now()
	if target.address == "" {
		snapshot.Balances = ZeroBalances(tokens)
	} else {
		snapshot.Balances, fetchErr = f.Fetch(ctx, target.address, target.network, tokens)
		metrics.BalanceFetchDuration.WithLabelValues(string(target.network)).Observe(f.now().Sub(start).Seconds())
	}
	if fetchErr != nil {
		snapshot.Error = fetchErr.Error()
	}
	for _, b := range snapshot.Balances {
		snapshot.TotalUSD += b.USDValue
	}
	snapshot.FetchedAt = f.now()

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		metrics.BalanceFetchesTotal.WithLabelValues(string(target.network), "stale").Inc()
		f.logger.Debug("Discarding stale balance result", "generation", gen)
		return snapshot, fetchErr
	}
	f.latest = snapshot
	f.mu.Unlock()

	outcome := "ok"
	if fetchErr != nil {
		outcome = "error"
		f.logger.Error("Balance fetch failed", "network", target.network, "error", fetchErr)
	}
	metrics.BalanceFetchesTotal.WithLabelValues(string(target.network), outcome).Inc()
	return snapshot, fetchErr
}

// Latest returns the most recently applied snapshot.
func (f *BalanceFetcher) Latest() entity.BalanceSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// Run refreshes immediately and then on every interval until ctx is done.
func (f *BalanceFetcher) Run(ctx context.Context) {
	f.refreshQuietly(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.refreshQuietly(ctx)
		}
	}
}

func (f *BalanceFetcher) refreshQuietly(ctx context.Context) {
	// errors are already logged and kept in the snapshot
	_, _ = f.Refresh(ctx)
}
