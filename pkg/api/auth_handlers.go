package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/errs"
	"github.com/ajanick3/readinglist/pkg/httputil"
	"github.com/ajanick3/readinglist/pkg/middleware"
	"github.com/ajanick3/readinglist/pkg/observability"
	"github.com/ajanick3/readinglist/pkg/store"
)

// AuthHandlers handles registration, login, and the current-user endpoint
type AuthHandlers struct {
	codec   *auth.TokenCodec
	users   store.UserStore
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(codec *auth.TokenCodec, users store.UserStore, logger *observability.Logger, metrics *observability.Metrics) *AuthHandlers {
	return &AuthHandlers{
		codec:   codec,
		users:   users,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes registers the /auth routes on the /api subrouter
func (h *AuthHandlers) RegisterRoutes(router *mux.Router, required *middleware.AuthMiddleware) {
	authRouter := router.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.register).Methods("POST")
	authRouter.HandleFunc("/login", h.login).Methods("POST")

	me := authRouter.PathPrefix("/me").Subrouter()
	me.Use(required.Handler)
	me.HandleFunc("", h.me).Methods("GET")
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register handles POST /api/register
func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Username == "" {
		httputil.WriteAPIError(w, errs.Validation("username can't be blank"))
		return
	}

	cred, err := auth.HashPassword(req.Password)
	if err != nil {
		httputil.WriteAPIError(w, err)
		return
	}

	if _, err := h.users.ReadByUsername(r.Context(), req.Username); err == nil {
		httputil.WriteAPIError(w, errs.Conflict("username taken"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.logger.WithError(err).Error("failed to look up username during registration")
		httputil.WriteAPIError(w, err)
		return
	}

	user, err := h.users.Insert(r.Context(), &store.User{
		Username: req.Username,
		Salt:     cred.Salt,
		Hash:     cred.Hash,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to insert user")
		httputil.WriteAPIError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RegistrationsTotal.Inc()
	}
	h.logger.WithField("username", user.Username).Info("user registered")
	h.writeUser(w, user)
}

// login handles POST /api/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Username == "" {
		httputil.WriteAPIError(w, errs.Validation("username can't be blank"))
		return
	}
	if req.Password == "" {
		httputil.WriteAPIError(w, errs.Validation("password can't be blank"))
		return
	}

	user, err := h.users.ReadByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response as a wrong password so callers cannot probe
			// which usernames exist.
			h.recordAuthFailure("unknown_username")
			httputil.WriteAPIError(w, errs.Validation("password can't be blank"))
			return
		}
		httputil.WriteAPIError(w, err)
		return
	}

	if !auth.VerifyPassword(req.Password, auth.Credential{Salt: user.Salt, Hash: user.Hash}) {
		h.recordAuthFailure("bad_password")
		httputil.WriteAPIError(w, errs.Validation("password can't be blank"))
		return
	}

	if h.metrics != nil {
		h.metrics.LoginsTotal.Inc()
	}
	h.logger.WithField("username", user.Username).Info("user logged in")
	h.writeUser(w, user)
}

// me handles GET /api/me. The auth middleware has already resolved the
// caller; a fresh token is issued on every call.
func (h *AuthHandlers) me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteAPIError(w, errs.NoToken())
		return
	}
	h.writeUser(w, user)
}

func (h *AuthHandlers) writeUser(w http.ResponseWriter, user *store.User) {
	token, err := h.codec.Encode(user.ID)
	if err != nil {
		h.logger.WithError(err).Error("failed to sign token")
		httputil.WriteAPIError(w, err)
		return
	}

	_ = httputil.WriteSuccess(w, userResponse{User: userPayload{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}})
}

func (h *AuthHandlers) recordAuthFailure(reason string) {
	if h.metrics != nil {
		h.metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
}
