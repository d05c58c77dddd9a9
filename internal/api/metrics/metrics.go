// Package metrics defines and registers all custom Prometheus metrics for the
// rewards API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry via promauto
// at package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rewards"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts successful registrations.
// Label:
//   - referred: "true" when the signup carried a referral code that resolved
//     to an existing user, "false" otherwise
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by referral resolution.",
	},
	[]string{"referred"},
)

// ReferralBonusesTotal counts referral bonuses credited to referrers.
var ReferralBonusesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "referral_bonuses_total",
		Help:      "Total number of referral bonuses credited.",
	},
)

// TasksCompletedTotal counts rewarded task completions.
// Label:
//   - task_id: catalog id of the completed task
var TasksCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of rewarded task completions, by task.",
	},
	[]string{"task_id"},
)

// WithdrawalsRequestedTotal counts accepted withdrawal requests.
// Label:
//   - method: payout method (e.g. "UPI")
var WithdrawalsRequestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "withdrawals_requested_total",
		Help:      "Total number of accepted withdrawal requests, by method.",
	},
	[]string{"method"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerEntriesTotal counts audit entries persisted by the ledger workers.
// Label:
//   - type: "referral_bonus", "task_reward", or "withdrawal_debit"
var LedgerEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_entries_total",
		Help:      "Total number of ledger audit entries written, by type.",
	},
	[]string{"type"},
)

// LedgerErrorsTotal counts audit entries that failed to persist.
var LedgerErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_errors_total",
		Help:      "Total number of ledger audit entries that failed to persist.",
	},
)

// LedgerQueueDepth tracks entries waiting in each ledger worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LedgerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_queue_depth",
		Help:      "Current number of entries pending in each ledger worker channel.",
	},
	[]string{"worker_id"},
)
