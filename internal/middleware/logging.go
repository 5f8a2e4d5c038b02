package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	customerrors "thyrocheck/internal/customErrors"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w}
		err := next(rec, r)

		duration := time.Since(start)
		status := rec.status
		var redirect *redirectError
		switch {
		case err != nil && errors.As(err, &redirect):
			status = http.StatusSeeOther
		case err != nil:
			status = customerrors.GetStatus(err)
		case status == 0:
			status = http.StatusOK
		}

		log.Printf("Completed %s %s | Status: %d | Duration: %v",
			r.Method, r.URL.Path, status, duration)

		return err
	}
}
