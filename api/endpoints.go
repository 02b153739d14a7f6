package api

// APIEndpoint is a simple alias to have a consistent definition
// of our API endpoints
type APIEndpoint string

// String allows for less casting in general code
func (ae APIEndpoint) String() string {
	return string(ae)
}

const (
	// base endpoints

	// AEHome is the / endpoint
	AEHome = APIEndpoint("/")
	// AEHealth is the service health check endpoint
	AEHealth = APIEndpoint("/health")
	// AEMetrics exposes prometheus metrics
	AEMetrics = APIEndpoint("/metrics")

	// username endpoints

	// AECheck reports whether a username is free
	AECheck = APIEndpoint("/api/username/check/{username}")
	// AERegister claims a username
	AERegister = APIEndpoint("/api/username/register")
	// AEList lists registered usernames, newest first
	AEList = APIEndpoint("/api/usernames")
	// AEResolve fetches the record for a username
	AEResolve = APIEndpoint("/api/resolve/{username}")
)
