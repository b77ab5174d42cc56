package tokens

import "context"

// Blocklist stores revoked JWT ids (jti). A token whose jti is present
// is rejected even before its expiry.
type Blocklist interface {
	Add(ctx context.Context, jti string) error
	Contains(ctx context.Context, jti string) (bool, error)
}
