package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_users_registered_total",
		Help: "Number of successfully registered users.",
	})

	loginsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_logins_succeeded_total",
		Help: "Number of successful authentications.",
	})

	loginsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_logins_failed_total",
		Help: "Number of failed authentications (unknown email or wrong password).",
	})

	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_tokens_issued_total",
		Help: "Number of tokens minted.",
	})

	tokensVerified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_tokens_verified_total",
		Help: "Number of tokens that passed verification.",
	})

	tokensRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypoint_tokens_rejected_total",
		Help: "Number of tokens rejected (invalid, expired or stale subject).",
	})
)

func incUsersRegistered() { usersRegistered.Inc() }
func incLoginsSucceeded() { loginsSucceeded.Inc() }
func incLoginsFailed()    { loginsFailed.Inc() }
func incTokensIssued()    { tokensIssued.Inc() }
func incTokensVerified()  { tokensVerified.Inc() }
func incTokensRejected()  { tokensRejected.Inc() }
