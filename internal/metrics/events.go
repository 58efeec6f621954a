package metrics

// Contact submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeLimited  = "rate_limited"
	OutcomeFailed   = "failed"
)

// ContactSubmission records the outcome of a submission on channel.
func ContactSubmission(channel, outcome string) {
	ContactSubmissionsTotal.WithLabelValues(channel, outcome).Inc()
}

// CatalogServed records a list response for resource.
func CatalogServed(resource string) {
	CatalogResponsesTotal.WithLabelValues(resource).Inc()
}

// PageView records a rendered page.
func PageView(page string) {
	PageViewsTotal.WithLabelValues(page).Inc()
}

// Contact submission channels.
const (
	ChannelAPI  = "api"
	ChannelForm = "form"
)
