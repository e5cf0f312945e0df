package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"smartaccount_playground/internal/domain/entity"
	"smartaccount_playground/internal/pkg/utils"

	"github.com/jellydator/validation"
)

var (
	addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	hexDataRegex = regexp.MustCompile(`^0x([0-9a-fA-F]{2})*$`)
)

// Validator checks raw call entries before compilation. It has no side effects.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the first failure in list order, or nil when every entry is valid.
func (v *Validator) Validate(mode entity.CallMode, entries []entity.CallEntry) *entity.ValidationError {
	if len(entries) == 0 {
		return &entity.ValidationError{Field: "entries", Message: "At least one entry is required"}
	}
	for i, entry := range entries {
		if verr := v.ValidateEntry(mode, i, entry); verr != nil {
			return verr
		}
	}
	return nil
}

// ValidateEntry runs the checks for a single entry at index.
func (v *Validator) ValidateEntry(mode entity.CallMode, index int, entry entity.CallEntry) *entity.ValidationError {
	if mode == entity.CallModeTransfer {
		return v.validateRecipient(index, entry)
	}
	return v.validateCall(index, entry)
}

func (v *Validator) validateCall(index int, entry entity.CallEntry) *entity.ValidationError {
	label := fmt.Sprintf("Call %d", index+1)

	if err := validation.Validate(entry.Target,
		validation.Required.Error(label+": Target address is required"),
		validation.Match(addressRegex).Error(label+": Invalid target address format"),
	); err != nil {
		return fieldError(fmt.Sprintf("call-%d-to", index), err)
	}

	if err := validation.Validate(entry.Value,
		validation.By(decimalRule(label+": Invalid value format")),
	); err != nil {
		return fieldError(fmt.Sprintf("call-%d-value", index), err)
	}

	if err := validation.Validate(entry.PayloadHex,
		validation.Match(hexDataRegex).Error(label+": Data must be valid hex (starting with 0x)"),
	); err != nil {
		return fieldError(fmt.Sprintf("call-%d-data", index), err)
	}

	return nil
}

func (v *Validator) validateRecipient(index int, entry entity.CallEntry) *entity.ValidationError {
	label := fmt.Sprintf("Recipient %d", index+1)

	if err := validation.Validate(entry.Target,
		validation.Required.Error(label+": Invalid address format"),
		validation.Match(addressRegex).Error(label+": Invalid address format"),
	); err != nil {
		return fieldError(fmt.Sprintf("recipient-%d-address", index), err)
	}

	if err := validation.Validate(entry.Amount,
		validation.Required.Error(label+": Amount must be greater than 0"),
		validation.By(positiveDecimalRule(label+": Amount must be greater than 0")),
	); err != nil {
		return fieldError(fmt.Sprintf("recipient-%d-amount", index), err)
	}

	return nil
}

// decimalRule accepts an empty value or a non-negative decimal.
func decimalRule(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s == "" || utils.IsDecimalString(s) {
			return nil
		}
		return errors.New(message)
	}
}

func positiveDecimalRule(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if utils.IsDecimalString(s) && strings.ContainsAny(s, "123456789") {
			return nil
		}
		return errors.New(message)
	}
}

func fieldError(field string, err error) *entity.ValidationError {
	return &entity.ValidationError{Field: field, Message: err.Error()}
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address. Checksums are not enforced.
func IsAddress(s string) bool {
	return addressRegex.MatchString(s)
}
