// Package metrics declares the custom Prometheus metrics of the blog.
// They register with the default registry on import; HTTP request metrics
// come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// Access-denied scopes.
const (
	ScopeRoute     = "route"
	ScopeOwnership = "ownership"
)

// ArticlesCreatedTotal counts persisted new articles.
var ArticlesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "articles_created_total",
	Help:      "Total number of articles created.",
})

// ArticlesDeletedTotal counts removed articles.
// Label:
//   - cause: "author_or_admin" for a direct delete, "user_deleted" for the cascade
var ArticlesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_deleted_total",
		Help:      "Total number of articles deleted, by cause.",
	},
	[]string{"cause"},
)

// TagsCreatedTotal counts tags created on first use.
var TagsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "tags_created_total",
	Help:      "Total number of tags created while resolving article tag strings.",
})

// AccessDeniedTotal counts denied requests.
// Label:
//   - scope: "route" for the role table, "ownership" for author/owner checks
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the route table or an ownership check.",
	},
	[]string{"scope"},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "users_registered_total",
	Help:      "Total number of registered users.",
})

// PasswordResetsTotal counts reset-flow steps.
// Label:
//   - result: "requested", "resent", "applied", "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Password reset flow events, by result.",
	},
	[]string{"result"},
)

// MailFailuresTotal counts mails the relay did not accept.
var MailFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "mail_failures_total",
	Help:      "Total number of outbound mails that failed to send.",
})
