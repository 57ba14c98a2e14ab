package cart

// ExpiryPolicy decides whether a failed remote call means the stored cart id
// can no longer be used. It is the single place where "expired" is inferred.
type ExpiryPolicy func(err error) bool

// DiscardOnAnyError treats every failure, transport errors included, as an
// expired cart. A temporary outage therefore drops a still valid cart id.
func DiscardOnAnyError(err error) bool {
	return err != nil
}

// DiscardOnRejection only discards when the platform answered and refused
// the cart. Transport failures keep the stored id.
func DiscardOnRejection(err error) bool {
	return IsRejection(err)
}

// PolicyByName maps the config value to a policy, defaulting to DiscardOnAnyError.
func PolicyByName(name string) ExpiryPolicy {
	if name == "rejection" {
		return DiscardOnRejection
	}
	return DiscardOnAnyError
}
