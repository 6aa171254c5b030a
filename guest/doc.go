// Package guest is the client side of the codec host functions.
//
// Code compiled for wasip1 reaches the host through the "reglet_host" import
// module. Other builds call an in-process registry, so the same client code
// runs unchanged in native tests and tools.
//
//	c := guest.NewClient()
//	data, err := c.DecodeBase64(ctx, "SGVsbG8=")
//
// LogHandler forwards slog records to the host's log_message function.
package guest
