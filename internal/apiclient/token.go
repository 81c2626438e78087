package apiclient

import "context"

type accessTokenKey struct{}

// WithAccessToken returns a context whose backend calls carry the token as a
// bearer credential.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the token stored by WithAccessToken, if any.
func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}
