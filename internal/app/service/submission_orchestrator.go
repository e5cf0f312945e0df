package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartaccount_playground/internal/app/port"
	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrNoAccount         = errors.New("no account")
	ErrSubmissionPending = errors.New("a submission is already pending")
	ErrEmptyBatch        = errors.New("no calls to submit")
	ErrWalletPanic       = errors.New("wallet capability panicked")
)

// SubmissionOrchestrator hands compiled batches to the wallet capability.
// At most one submission is pending at any time.
type SubmissionOrchestrator struct {
	wallet   port.WalletCapability
	networks port.NetworkDefinitionProvider
	logger   port.Logger
	timeout  time.Duration
	now      func() time.Time

	mu    sync.Mutex
	state entity.SubmissionResult
}

func NewSubmissionOrchestrator(
	wallet port.WalletCapability,
	networks port.NetworkDefinitionProvider,
	logger port.Logger,
	timeout time.Duration,
) *SubmissionOrchestrator {
	return &SubmissionOrchestrator{
		wallet:   wallet,
		networks: networks,
		logger:   logger,
		timeout:  timeout,
		now:      time.Now,
		state:    entity.SubmissionResult{Status: entity.SubmissionIdle},
	}
}

// Pending reports whether a submission is in flight. Callers check it before Submit.
func (o *SubmissionOrchestrator) Pending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Status == entity.SubmissionPending
}

// State returns the latest result.
func (o *SubmissionOrchestrator) State() entity.SubmissionResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit runs one submission to completion.
// Wallet failures are reported through the returned result with a nil error.
// A non-nil error means the wallet was never contacted.
func (o *SubmissionOrchestrator) Submit(
	ctx context.Context,
	account *entity.SmartAccount,
	network entity.Network,
	calls []entity.CompiledCall,
	sponsorship entity.SponsorshipConfig,
) (entity.SubmissionResult, error) {
	o.mu.Lock()
	if o.state.Status == entity.SubmissionPending {
		o.mu.Unlock()
		o.logger.Warn("Rejected submission while another is pending", "network", network)
		return entity.SubmissionResult{}, ErrSubmissionPending
	}

	started := o.now()
	result := entity.SubmissionResult{
		ID:        uuid.NewString(),
		Network:   network,
		CallCount: len(calls),
		Sponsored: sponsorship.Attached(),
		Warning:   sponsorship.Warning,
		StartedAt: &started,
	}

	var precondition error
	switch {
	case account == nil:
		precondition = ErrNoAccount
	case len(calls) == 0:
		precondition = ErrEmptyBatch
	}
	if precondition != nil {
		result.Status = entity.SubmissionFailed
		result.Error = precondition.Error()
		result.FinishedAt = &started
		o.state = result
		o.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues(string(network), string(entity.SubmissionFailed)).Inc()
		return result, precondition
	}

	result.Status = entity.SubmissionPending
	o.state = result
	o.mu.Unlock()

	req := entity.UserOperationRequest{
		Account: *account,
		Network: network,
		Calls:   calls,
	}
	if sponsorship.Attached() {
		s := sponsorship
		req.Sponsorship = &s
	}

	o.logger.Info("Submitting user operation",
		"submission_id", result.ID, "network", network, "calls", len(calls), "sponsored", result.Sponsored)

	callCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	receipt, err := o.sendUserOperation(callCtx, req)

	finished := o.now()
	result.FinishedAt = &finished
	if err != nil {
		result.Status = entity.SubmissionFailed
		result.Error = userFacingSubmitError(err)
		o.logger.Error("User operation failed", "submission_id", result.ID, "network", network, "error", err)
	} else {
		result.Status = entity.SubmissionSuccess
		result.TransactionID = receipt.TransactionID
		if def, ok := o.networks.GetNetworkDefinition(network); ok {
			result.ExplorerURL = def.TransactionURL(receipt.TransactionID)
		}
		o.logger.Info("User operation succeeded",
			"submission_id", result.ID, "network", network, "transaction_id", receipt.TransactionID)
	}

	metrics.SubmissionDuration.WithLabelValues(string(network)).Observe(finished.Sub(started).Seconds())
	metrics.SubmissionsTotal.WithLabelValues(string(network), string(result.Status)).Inc()

	o.mu.Lock()
	o.state = result
	o.mu.Unlock()
	return result, nil
}

// sendUserOperation turns a panicking wallet into an ordinary failure so the state never stays pending.
func (o *SubmissionOrchestrator) sendUserOperation(ctx context.Context, req entity.UserOperationRequest) (receipt entity.UserOperationReceipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Wallet capability panicked", "network", req.Network, "panic", r)
			err = fmt.Errorf("%w: %v", ErrWalletPanic, r)
		}
	}()
	return o.wallet.SendUserOperation(ctx, req)
}

// Reset returns a finished orchestrator to idle.
func (o *SubmissionOrchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Status == entity.SubmissionPending {
		return ErrSubmissionPending
	}
	o.state = entity.SubmissionResult{Status: entity.SubmissionIdle}
	return nil
}

func userFacingSubmitError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Transaction failed: submission timed out"
	case errors.Is(err, context.Canceled):
		return "Transaction failed: submission was cancelled"
	case errors.Is(err, ErrWalletPanic):
		return "Transaction failed: the wallet stopped unexpectedly"
	default:
		return fmt.Sprintf("Transaction failed: %v", err)
	}
}
