package internal

import "expvar"

var (
	requestsTotal = expvar.NewMap("reponotify_requests_total")
	parseErrors   = expvar.NewMap("reponotify_parse_errors_total")
	sendErrors    = expvar.NewMap("reponotify_send_errors_total")
	authFailures  = expvar.NewMap("reponotify_auth_failures_total")
	outcomes      = expvar.NewMap("reponotify_outcomes_total")
)

func IncRequest(event string) {
	requestsTotal.Add(event, 1)
}

func IncParseError(event string) {
	parseErrors.Add(event, 1)
}

func IncSendError(driver string) {
	sendErrors.Add(driver, 1)
}

func IncAuthFailure(tenant string) {
	authFailures.Add(tenant, 1)
}

func IncOutcome(outcome string) {
	outcomes.Add(outcome, 1)
}
