package frontend

import (
	"net/http"
	"time"

	rpc "github.com/alpacahq/rpc/rpc2"
	"github.com/alpacahq/rpc/rpc2/json2"

	"github.com/bizclock/bizclock/metrics"
	"github.com/bizclock/bizclock/utils"
	"github.com/bizclock/bizclock/utils/log"
	"github.com/bizclock/bizclock/utils/rpc/msgpack2"
)

// RpcServer serves the CalendarService over HTTP.
type RpcServer struct {
	*rpc.Server
}

func (s *RpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("bizclock-version", utils.GitHash)
	metrics.RPCTotalRequestsTotal.Inc()
	s.Server.ServeHTTP(w, r)
	metrics.RPCTotalRequestDuration.Observe(time.Since(start).Seconds())
}

// NewServer builds an RPC server with JSON and msgpack codecs and the
// CalendarService registered.
func NewServer(service *CalendarService) *RpcServer {
	s := &RpcServer{
		Server: rpc.NewServer(),
	}
	s.RegisterCodec(json2.NewCodec(), "application/json")
	s.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")
	s.RegisterCodec(msgpack2.NewCodec(), "application/x-msgpack")
	err := s.RegisterService(service, "")
	if err != nil {
		log.Error("Failed to register service - Error: %v", err)
	}
	return s
}
