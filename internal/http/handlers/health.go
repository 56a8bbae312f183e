package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// StatsFunc reports sold and unsold player counts from storage.
type StatsFunc func() (sold int, unsold int, err error)

func HealthCheckHandler(stats StatsFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		sold, unsold, err := stats()
		if err != nil {
			log.Error("Health check failed to reach the store", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK! sold=%d unsold=%d", sold, unsold)
	}
}
