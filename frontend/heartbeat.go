package frontend

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bizclock/bizclock/utils"
	"github.com/bizclock/bizclock/utils/log"
)

var Queryable uint32 // treated as bool

type HeartbeatMessage struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	GitHash string `json:"git_hash"`
	Uptime  string `json:"uptime"`
}

// NewUtilityAPIHandlers returns the handlers for the non-RPC utility
// endpoints: heartbeat, prometheus metrics and profiling.
func NewUtilityAPIHandlers(startTime time.Time) *utilityAPIHandlers {
	return &utilityAPIHandlers{startTime: startTime}
}

type utilityAPIHandlers struct {
	startTime time.Time
}

// Register attaches the utility endpoints to mux.
func (uah *utilityAPIHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/heartbeat", uah.heartbeat)
	mux.Handle("/metrics", promhttp.Handler())

	// profiling
	mux.HandleFunc("/pprof/", pprof.Index)
	mux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/pprof/profile", pprof.Profile)
	mux.HandleFunc("/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/pprof/trace", pprof.Trace)
	mux.Handle("/pprof/heap", pprof.Handler("heap"))
	mux.Handle("/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/pprof/threadcreate", pprof.Handler("threadcreate"))
	mux.Handle("/pprof/block", pprof.Handler("block"))
}

func (uah *utilityAPIHandlers) heartbeat(rw http.ResponseWriter, _ *http.Request) {
	uptime := time.Since(uah.startTime).String()
	queryable := atomic.LoadUint32(&Queryable)
	msg := HeartbeatMessage{
		Status:  "queryable",
		Version: utils.Tag,
		GitHash: utils.GitHash,
		Uptime:  uptime,
	}
	if queryable > 0 {
		rw.WriteHeader(http.StatusOK)
	} else {
		msg.Status = "not queryable"
		rw.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(rw).Encode(msg); err != nil {
		log.Error("Failed to write heartbeat message - Error: %v", err)
	}
}
