package ports

import "context"

type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// PresenceChecker gates secret retrieval behind a user-presence challenge.
// Implementations return domain.ErrUserCanceled when the user dismisses the
// prompt and domain.ErrAuthFailed when the challenge is not satisfied.
type PresenceChecker interface {
	Challenge(ctx context.Context, reason string) error
}
