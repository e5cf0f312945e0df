package service

import (
	"context"
	"errors"
	"fmt"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
)

var (
	ErrUnknownMode          = errors.New("unknown draft mode")
	ErrUnsupportedForMode   = errors.New("operation not supported for this mode")
	ErrBalanceUnavailable   = errors.New("no balance available for token")
	errAccountLookupFailure = errors.New("account lookup failed")
)

// PlaygroundService wires the pipeline: drafts, validation, compilation,
// sponsorship and submission, plus settings and balances.
type PlaygroundService struct {
	networks     port.NetworkDefinitionProvider
	tokens       port.TokenProvider
	accounts     port.AccountProvider
	settings     *SettingsService
	validator    *Validator
	compiler     *CallCompiler
	resolver     *SponsorshipResolver
	orchestrator *SubmissionOrchestrator
	balances     *BalanceFetcher
	presets      *Presets
	drafts       map[entity.CallMode]*Draft
	logger       port.Logger
}

var _ port.PlaygroundService = (*PlaygroundService)(nil)

func NewPlaygroundService(
	networks port.NetworkDefinitionProvider,
	tokens port.TokenProvider,
	accounts port.AccountProvider,
	settings *SettingsService,
	orchestrator *SubmissionOrchestrator,
	balances *BalanceFetcher,
	logger port.Logger,
) *PlaygroundService {
	return &PlaygroundService{
		networks:     networks,
		tokens:       tokens,
		accounts:     accounts,
		settings:     settings,
		validator:    NewValidator(),
		compiler:     NewCallCompiler(tokens, logger),
		resolver:     NewSponsorshipResolver(logger),
		orchestrator: orchestrator,
		balances:     balances,
		presets:      NewPresets(tokens, networks),
		drafts: map[entity.CallMode]*Draft{
			entity.CallModeDirect:   NewDraft(entity.CallModeDirect),
			entity.CallModeTransfer: NewDraft(entity.CallModeTransfer),
		},
		logger: logger,
	}
}

// Start points the balance fetcher at the current account and network.
func (s *PlaygroundService) Start(ctx context.Context) error {
	settings, err := s.settings.Load()
	if err != nil {
		return err
	}
	_, err = s.balances.SetTarget(ctx, s.accountAddress(ctx), settings.Network)
	if err != nil {
		s.logger.Warn("Initial balance fetch failed", "error", err)
	}
	return nil
}

func (s *PlaygroundService) Networks() []entity.NetworkDefinition {
	return s.networks.GetAllNetworkDefinitions()
}

func (s *PlaygroundService) Tokens(network entity.Network) ([]entity.TokenInfo, error) {
	return s.tokens.GetTokens(network)
}

func (s *PlaygroundService) Settings() (entity.Settings, error) {
	return s.settings.Load()
}

// UpdateSettings persists the change and retargets balances when the network changed.
func (s *PlaygroundService) UpdateSettings(ctx context.Context, update entity.SettingsUpdate) (entity.Settings, error) {
	before, err := s.settings.Load()
	if err != nil {
		return entity.Settings{}, err
	}
	after, err := s.settings.Apply(update)
	if err != nil {
		return entity.Settings{}, err
	}
	s.logger.Info("Settings updated", "network", after.Network, "use_paymaster", after.UsePaymaster, "paymaster_url_set", after.PaymasterURL != "")

	if after.Network != before.Network {
		if _, err := s.balances.SetTarget(ctx, s.accountAddress(ctx), after.Network); err != nil {
			s.logger.Warn("Balance refresh after network change failed", "network", after.Network, "error", err)
		}
	}
	return after, nil
}

func (s *PlaygroundService) Account(ctx context.Context) (*entity.SmartAccount, error) {
	return s.accounts.SmartAccount(ctx)
}

func (s *PlaygroundService) SignOut(ctx context.Context) error {
	if err := s.accounts.SignOut(ctx); err != nil {
		return err
	}
	settings, err := s.settings.Load()
	if err != nil {
		return err
	}
	_, err = s.balances.SetTarget(ctx, "", settings.Network)
	return err
}

func (s *PlaygroundService) accountAddress(ctx context.Context) string {
	account, err := s.accounts.SmartAccount(ctx)
	if err != nil || account == nil {
		return ""
	}
	return account.Address.Hex()
}

func (s *PlaygroundService) draft(mode entity.CallMode) (*Draft, error) {
	d, ok := s.drafts[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return d, nil
}

// Draft returns the entries of a mode; unknown modes yield nil.
func (s *PlaygroundService) Draft(mode entity.CallMode) []entity.CallEntry {
	d, err := s.draft(mode)
	if err != nil {
		return nil
	}
	return d.Entries()
}

func (s *PlaygroundService) AddEntry(mode entity.CallMode) []entity.CallEntry {
	d, err := s.draft(mode)
	if err != nil {
		return nil
	}
	return d.Add()
}

func (s *PlaygroundService) UpdateEntry(mode entity.CallMode, index int, field, value string) ([]entity.CallEntry, error) {
	d, err := s.draft(mode)
	if err != nil {
		return nil, err
	}
	return d.Update(index, field, value)
}

func (s *PlaygroundService) RemoveEntry(mode entity.CallMode, index int) ([]entity.CallEntry, error) {
	d, err := s.draft(mode)
	if err != nil {
		return nil, err
	}
	return d.Remove(index)
}

// FillMaxAmount sets a transfer entry's amount to the full balance of its token.
func (s *PlaygroundService) FillMaxAmount(mode entity.CallMode, index int) ([]entity.CallEntry, error) {
	if mode != entity.CallModeTransfer {
		return nil, fmt.Errorf("%w: max amount needs %s", ErrUnsupportedForMode, entity.CallModeTransfer)
	}
	d, err := s.draft(mode)
	if err != nil {
		return nil, err
	}
	entries := d.Entries()
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("%w: %d", ErrEntryIndex, index)
	}

	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GetTokenBySymbol(settings.Network, entries[index].TokenSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownToken, entries[index].TokenSymbol, err)
	}

	snapshot := s.balances.Latest()
	balance, ok := snapshot.Balance(token.Symbol)
	if snapshot.Network != settings.Network || !ok {
		return nil, fmt.Errorf("%w: %s", ErrBalanceUnavailable, token.Symbol)
	}
	return d.Update(index, entity.FieldAmount, balance.FormattedBalance)
}

// LoadPreset replaces the direct-mode draft with a preset.
func (s *PlaygroundService) LoadPreset(mode entity.CallMode, preset string) ([]entity.CallEntry, error) {
	if mode != entity.CallModeDirect {
		return nil, fmt.Errorf("%w: presets need %s", ErrUnsupportedForMode, entity.CallModeDirect)
	}
	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	entries, err := s.presets.Build(preset, settings.Network)
	if err != nil {
		return nil, err
	}
	return s.drafts[mode].Replace(entries), nil
}

func (s *PlaygroundService) ValidateDraft(mode entity.CallMode) *entity.ValidationError {
	d, err := s.draft(mode)
	if err != nil {
		return &entity.ValidationError{Field: "mode", Message: err.Error()}
	}
	return s.validator.Validate(mode, d.Entries())
}

func (s *PlaygroundService) CompileDraft(mode entity.CallMode) (entity.BatchPreview, error) {
	d, err := s.draft(mode)
	if err != nil {
		return entity.BatchPreview{}, err
	}
	return s.CompileEntries(mode, d.Entries())
}

// CompileEntries validates and compiles entries for the selected network without submitting.
func (s *PlaygroundService) CompileEntries(mode entity.CallMode, entries []entity.CallEntry) (entity.BatchPreview, error) {
	if _, err := s.draft(mode); err != nil {
		return entity.BatchPreview{}, err
	}
	if verr := s.validator.Validate(mode, entries); verr != nil {
		return entity.BatchPreview{}, verr
	}

	settings, err := s.settings.Load()
	if err != nil {
		return entity.BatchPreview{}, err
	}
	calls, err := s.compiler.Compile(mode, settings.Network, entries)
	if err != nil {
		return entity.BatchPreview{}, err
	}

	return entity.BatchPreview{
		Mode:        mode,
		Network:     settings.Network,
		Calls:       calls,
		Sponsorship: s.resolver.Resolve(settings.UsePaymaster, settings.Network, settings.PaymasterURL),
	}, nil
}

// SubmitDraft runs the full pipeline for a mode's draft.
func (s *PlaygroundService) SubmitDraft(ctx context.Context, mode entity.CallMode) (entity.SubmissionResult, error) {
	if s.orchestrator.Pending() {
		return entity.SubmissionResult{}, ErrSubmissionPending
	}

	preview, err := s.CompileDraft(mode)
	if err != nil {
		return entity.SubmissionResult{}, err
	}

	account, err := s.accounts.SmartAccount(ctx)
	if err != nil {
		return entity.SubmissionResult{}, fmt.Errorf("%w: %v", errAccountLookupFailure, err)
	}
	return s.orchestrator.Submit(ctx, account, preview.Network, preview.Calls, preview.Sponsorship)
}

func (s *PlaygroundService) Submission() entity.SubmissionResult {
	return s.orchestrator.State()
}

// ResetSubmission returns the orchestrator to idle and clears the mode's draft.
func (s *PlaygroundService) ResetSubmission(mode entity.CallMode) error {
	d, err := s.draft(mode)
	if err != nil {
		return err
	}
	if err := s.orchestrator.Reset(); err != nil {
		return err
	}
	d.Reset()
	return nil
}
