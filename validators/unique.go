package validators

import (
	"context"
	"errors"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/repositories"
)

// Lookup returns the id of the record currently holding value, or an error
// wrapping repositories.ErrNotFound when the value is free.
type Lookup func(ctx context.Context, value string) (string, error)

// UniqueRule describes one unique field of a submission
type UniqueRule struct {
	Field   string
	Value   string
	Message string
	Lookup  Lookup
}

// CheckUnique runs every rule and reports a conflict for each value already
// held by a record other than excludeID. Pass an empty excludeID on create.
// This is a pre-check only; the store's unique constraints remain authoritative.
func CheckUnique(ctx context.Context, excludeID string, rules ...UniqueRule) (apperrors.FieldErrors, error) {
	conflicts := apperrors.FieldErrors{}

	for _, rule := range rules {
		if rule.Value == "" {
			continue
		}
		id, err := rule.Lookup(ctx, rule.Value)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if excludeID != "" && id == excludeID {
			continue
		}
		conflicts.Add(rule.Field, rule.Message)
	}

	return conflicts, nil
}
