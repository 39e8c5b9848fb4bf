package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Requests        *prometheus.CounterVec
	TweetsPosted    prometheus.Counter
	RepliesPosted   prometheus.Counter
	LikesToggled    prometheus.Counter
	RetweetsToggled prometheus.Counter
	Follows         prometheus.Counter
	Unfollows       prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chirp_http_requests_total",
				Help: "Total number of HTTP requests by method and status class",
			},
			[]string{"method", "status"},
		),
		TweetsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_tweets_posted_total",
			Help: "Total number of tweets posted",
		}),
		RepliesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_replies_posted_total",
			Help: "Total number of replies posted",
		}),
		LikesToggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_likes_toggled_total",
			Help: "Total number of like toggles applied",
		}),
		RetweetsToggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_retweets_toggled_total",
			Help: "Total number of retweet toggles applied",
		}),
		Follows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_follows_total",
			Help: "Total number of successful follow requests",
		}),
		Unfollows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_unfollows_total",
			Help: "Total number of successful unfollow requests",
		}),
	}

	prometheus.MustRegister(
		m.Requests,
		m.TweetsPosted,
		m.RepliesPosted,
		m.LikesToggled,
		m.RetweetsToggled,
		m.Follows,
		m.Unfollows,
	)

	return m
}
