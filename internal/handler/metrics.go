package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_token_verifications_total",
			Help: "Total number of access token verification attempts by status.",
		},
		[]string{"status"},
	)

	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_turns_total",
			Help: "Total number of DM turns by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)
