package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DailySelections = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_daily_selections_total", Help: "Total daily activity selections"},
	)
	SubmissionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_submissions_total", Help: "Total photo submissions recorded"},
	)
	VotesToggled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_votes_toggled_total", Help: "Total vote toggles on submissions"},
	)
	ReactionsToggled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_reactions_toggled_total", Help: "Total reaction toggles on submissions"},
	)
	LeaderboardComputations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_leaderboard_computations_total", Help: "Total group leaderboard computations"},
	)
	NotificationsEnqueued = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "actify_notifications_enqueued_total", Help: "Total notifications enqueued"},
	)
)

func Register() {
	prometheus.MustRegister(
		DailySelections,
		SubmissionsCreated,
		VotesToggled,
		ReactionsToggled,
		LeaderboardComputations,
		NotificationsEnqueued,
	)
}
