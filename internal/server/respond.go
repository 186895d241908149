package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/SEA6153/tableview/internal/resolver"
	"github.com/SEA6153/tableview/internal/session"
	"github.com/SEA6153/tableview/pkg/records"
)

// response is the envelope of every API reply.
type response struct {
	Data    any              `json:"data,omitempty"`
	Notices []records.Notice `json:"notices"`
	Error   string           `json:"error,omitempty"`
}

// requestError marks a malformed request.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

// opFunc is one API operation against a session's store and catalog.
// It may return data together with an error.
type opFunc func(store *records.Store, catalog *records.Catalog) (any, error)

// run executes op inside the caller's session and writes the reply with the
// notices the operation queued.
func (s *Server) run(w http.ResponseWriter, r *http.Request, okStatus int, op opFunc) {
	sess := s.session(w, r)

	var data any
	var notices []records.Notice
	err := sess.Do(r.Context(), func(store *records.Store, catalog *records.Catalog) error {
		var opErr error
		data, opErr = op(store, catalog)
		notices = store.DrainNotices()
		return opErr
	})

	resp := response{Data: data, Notices: notices}
	status := okStatus
	if err != nil {
		status = statusFor(err)
		resp.Error = err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("[Server] %s %s failed: %v", r.Method, r.URL.Path, err)
		}
	}
	writeJSON(w, status, resp)
}

// session returns the caller's session, starting one and setting the cookie
// when the request carries no valid key.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	key := ""
	if c, err := r.Cookie(s.opts.CookieName); err == nil && records.IsValidUUID(c.Value) {
		key = c.Value
	}
	if key == "" {
		key = session.NewKey()
		http.SetCookie(w, &http.Cookie{
			Name:     s.opts.CookieName,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	sess, _ := s.registry.Get(r.Context(), key, r.URL.Query().Get("selectedTable"))
	return sess
}

// statusFor maps an operation error to its HTTP status.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case records.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case records.IsNotFound(err), resolver.IsNotFoundError(err):
		return http.StatusNotFound
	case records.IsStaleCursor(err), resolver.IsAmbiguousError(err):
		return http.StatusConflict
	case records.IsInvalidName(err), errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &requestError{msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), response{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	if resp.Notices == nil {
		resp.Notices = []records.Notice{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
