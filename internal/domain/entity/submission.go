package entity

import "time"

// SubmissionStatus is the lifecycle state of the orchestrator.
type SubmissionStatus string

const (
	SubmissionIdle    SubmissionStatus = "idle"
	SubmissionPending SubmissionStatus = "pending"
	SubmissionSuccess SubmissionStatus = "success"
	SubmissionFailed  SubmissionStatus = "failed"
)

// SubmissionResult is the outcome of one orchestration attempt.
type SubmissionResult struct {
	ID            string           `json:"id,omitempty"`
	Status        SubmissionStatus `json:"status"`
	Network       Network          `json:"network,omitempty"`
	CallCount     int              `json:"callCount,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	ExplorerURL   string           `json:"explorerUrl,omitempty"`
	Error         string           `json:"error,omitempty"`
	Sponsored     bool             `json:"sponsored"`
	Warning       string           `json:"warning,omitempty"`
	StartedAt     *time.Time       `json:"startedAt,omitempty"`
	FinishedAt    *time.Time       `json:"finishedAt,omitempty"`
}

// UserOperationRequest is what the wallet capability receives.
type UserOperationRequest struct {
	Account     SmartAccount       `json:"account"`
	Network     Network            `json:"network"`
	Calls       []CompiledCall     `json:"calls"`
	Sponsorship *SponsorshipConfig `json:"sponsorship,omitempty"`
}

// UserOperationReceipt is returned by the wallet capability on success.
type UserOperationReceipt struct {
	UserOpHash    string `json:"userOpHash,omitempty"`
	TransactionID string `json:"transactionHash"`
}
