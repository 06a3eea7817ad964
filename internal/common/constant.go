package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the metadata key the credential store persists its token under.
	TokenMetadataKey = "id_token"
)
