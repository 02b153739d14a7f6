package event

const (
	// ETUsernameRegistered fires after a registration durably commits
	// payload is *registry.Record
	ETUsernameRegistered = Topic("registry:UsernameRegistered")
	// ETRegistrationFailed fires when the registration pipeline rejects or
	// fails a request
	// payload is RegistrationFailure
	ETRegistrationFailed = Topic("registry:RegistrationFailed")
	// ETBackendDegraded fires when a query could not reach the backend and
	// a fail-open or fail-closed policy was applied instead
	// payload is BackendDegraded
	ETBackendDegraded = Topic("registry:BackendDegraded")
)

// RegistrationFailure describes a rejected registration
type RegistrationFailure struct {
	Username string
	// Kind is one of "invalid_format", "already_taken", "signature_invalid",
	// "upload_failed"
	Kind   string
	Detail string
}

// BackendDegraded describes a query that fell back to a policy default
type BackendDegraded struct {
	// Op is the operation that degraded: "availability", "register" or "resolve"
	Op       string
	Username string
	// FailOpen is true when the fallback treated the name as available
	FailOpen bool
	Err      error
}
