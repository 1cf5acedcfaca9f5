package dualcaster

import "time"

/*
config sets up shared constants for the web app:
- API timeouts and pagination defaults used by the client layer
- cookie names shared between the auth service and the handlers
- common maps - used to validate enum values before they are sent to the backend
*/

// common constants
const (
	// DefaultAPITimeout applies to every backend call unless the endpoint is
	// refresh-class (see RefreshAPITimeout).
	DefaultAPITimeout = 30 * time.Second

	// RefreshAPITimeout applies to endpoints whose path contains "/refresh" -
	// these trigger server-side recomputation and can run for minutes.
	RefreshAPITimeout = 300 * time.Second

	DefaultPageSize = 20

	MinimumPasswordLength = 12

	SessionCookieName = "dualcaster_session"

	DefaultFormRequestSize = 64 * 1024
	MaxImportRequestSize   = 5 * 1024 * 1024
)

// common maps - used to validate enum values received from forms
var ValidModerationResolutions = map[string]bool{ // moderation queue actions
	"upheld":     true,
	"reduced":    true,
	"overturned": true,
}

var ValidDisputeStatuses = map[string]bool{ // trade dispute lifecycle (transitions are server-owned)
	"open":               true,
	"evidence_requested": true,
	"resolved":           true,
}

var ValidAppealStatuses = map[string]bool{
	"pending":    true,
	"upheld":     true,
	"reduced":    true,
	"overturned": true,
}

var ValidPriceHorizons = map[string]bool{ // price history windows accepted by the API
	"7d":  true,
	"30d": true,
	"90d": true,
	"1y":  true,
}
