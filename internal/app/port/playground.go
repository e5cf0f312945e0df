package port

import (
	"context"

	"smartaccount_playground/internal/domain/entity"
)

// PlaygroundService drives the call batch pipeline for the HTTP layer.
type PlaygroundService interface {
	Networks() []entity.NetworkDefinition
	Tokens(network entity.Network) ([]entity.TokenInfo, error)

	Settings() (entity.Settings, error)
	UpdateSettings(ctx context.Context, update entity.SettingsUpdate) (entity.Settings, error)

	Account(ctx context.Context) (*entity.SmartAccount, error)
	SignOut(ctx context.Context) error

	Draft(mode entity.CallMode) []entity.CallEntry
	AddEntry(mode entity.CallMode) []entity.CallEntry
	UpdateEntry(mode entity.CallMode, index int, field, value string) ([]entity.CallEntry, error)
	RemoveEntry(mode entity.CallMode, index int) ([]entity.CallEntry, error)
	FillMaxAmount(mode entity.CallMode, index int) ([]entity.CallEntry, error)
	LoadPreset(mode entity.CallMode, preset string) ([]entity.CallEntry, error)

	ValidateDraft(mode entity.CallMode) *entity.ValidationError
	CompileDraft(mode entity.CallMode) (entity.BatchPreview, error)
	CompileEntries(mode entity.CallMode, entries []entity.CallEntry) (entity.BatchPreview, error)
	SubmitDraft(ctx context.Context, mode entity.CallMode) (entity.SubmissionResult, error)

	Submission() entity.SubmissionResult
	ResetSubmission(mode entity.CallMode) error
}

// BalanceService exposes the balance fetcher to the HTTP layer.
type BalanceService interface {
	Latest() entity.BalanceSnapshot
	Refresh(ctx context.Context) (entity.BalanceSnapshot, error)
}
