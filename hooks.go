package mcwire

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; decode calls them on the
// hot path. Wrap with hooks/async when in doubt.
type Hooks interface {
	// A type failed to compile.
	SchemaRejected(typeName string, err error)

	// A decode failed and the message was rejected.
	DecodeRejected(typeName string, err error)

	// An unknown discriminant was absorbed by a union's fallback variant.
	FallbackDecoded(union string, discriminant int64)

	// The blob cache deleted an entry on read.
	// reason ∈ {"corrupt", "hash_mismatch"}
	BlobSelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SchemaRejected(string, error)  {}
func (NopHooks) DecodeRejected(string, error)  {}
func (NopHooks) FallbackDecoded(string, int64) {}
func (NopHooks) BlobSelfHeal(string, string)   {}
func (NopHooks) ProviderSetRejected(string)    {}
