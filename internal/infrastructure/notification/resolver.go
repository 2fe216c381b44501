package notification

import (
	"context"
	"fmt"
	"strings"
)

// AddressPatternResolver derives recipient addresses from a printf pattern
// containing a single %d verb, e.g. "staff-%d@corp.example.com". Deployments
// with a real staff directory supply their own RecipientResolver instead.
type AddressPatternResolver struct {
	pattern string
}

// NewAddressPatternResolver creates a pattern-based resolver.
func NewAddressPatternResolver(pattern string) (*AddressPatternResolver, error) {
	if strings.Count(pattern, "%d") != 1 {
		return nil, fmt.Errorf("address pattern must contain exactly one %%d verb, got %q", pattern)
	}
	return &AddressPatternResolver{pattern: pattern}, nil
}

func (r *AddressPatternResolver) ResolveEmail(_ context.Context, recipientID uint) (string, error) {
	return fmt.Sprintf(r.pattern, recipientID), nil
}
