package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"faqhub.org/internal/auth"
	"faqhub.org/internal/chat"
	"faqhub.org/internal/faq"
	"faqhub.org/internal/obs"
)

// Log is an append-only review log (feedback, unanswered questions).
type Log interface {
	Append(line string) error
	Lines() []string
	Reset() error
}

// ReadyProbe checks downstream readiness, e.g. pinging the credential DB.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	faqs       faq.Store
	chat       *chat.Service
	feedback   Log
	unanswered Log
	origin     string
	readyProbe ReadyProbe
	version    string
}

// New wires all routes.
func New(authSvc *auth.Service, faqs faq.Store, chatSvc *chat.Service, feedback, unanswered Log, origin string, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		faqs:       faqs,
		chat:       chatSvc,
		feedback:   feedback,
		unanswered: unanswered,
		origin:     origin,
		readyProbe: rp,
		version:    version,
	}

	// health/ready/metrics
	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReady)
	a.mux.Handle("/metrics", obs.Handler())

	// session protocol
	a.mux.HandleFunc("/login", a.handleLogin)
	a.mux.HandleFunc("/token", a.handleToken)
	a.mux.HandleFunc("/logout", a.handleLogout)
	a.mux.HandleFunc("/whoami", a.handleWhoami)

	// public chat surface
	a.mux.HandleFunc("/chat", a.handleChat)
	a.mux.HandleFunc("/feedback", a.handleFeedback)

	// FAQ catalog
	a.mux.HandleFunc("/faqs", a.handleFAQCollection)
	a.mux.HandleFunc("/faqs/", a.handleFAQResource)

	// admin console
	a.mux.HandleFunc("/admins", a.handleAdminCollection)
	a.mux.HandleFunc("/admins/", a.handleAdminResource)
	a.mux.HandleFunc("/feedbacks", a.handleFeedbacks)
	a.mux.HandleFunc("/unanswered", a.handleUnanswered)
	a.mux.HandleFunc("/admin/reset-logs", a.handleResetLogs)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, 1<<20)
	h = CORS(h, a.origin)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
