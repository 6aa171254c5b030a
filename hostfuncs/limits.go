package hostfuncs

// DefaultMaxOutputSize caps the output buffer a single decode call may
// allocate (10MB), regardless of the capacity the guest asks for.
const DefaultMaxOutputSize = 10 * 1024 * 1024

// DefaultMaxRequestSize limits the size of incoming requests (1MB).
// This prevents guests from triggering OOM by claiming huge request sizes.
const DefaultMaxRequestSize = 1 * 1024 * 1024
