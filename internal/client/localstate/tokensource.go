package localstate

import "context"

// TokenSource reads the persisted bearer token for outbound requests,
// mirroring the original client which consulted durable storage on every
// call. A read failure yields an empty token: requests then go out
// unauthenticated and the backend decides.
type TokenSource struct {
	repo Repository
}

func NewTokenSource(repo Repository) *TokenSource {
	return &TokenSource{repo: repo}
}

func (t *TokenSource) Token(ctx context.Context) string {
	v, err := t.repo.Get(ctx, KeyToken)
	if err != nil {
		return ""
	}
	return string(v)
}
