// This is a copy from gorilla's jsonrpc2 using msgpack
//
// Copyright 2009 The Go Authors. All rights reserved.
// Copyright 2012 The Gorilla Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msgpack2

import (
	"net/http"

	rpc "github.com/alpacahq/rpc/rpc2"
	msgpack "github.com/vmihailenco/msgpack"
)

// serverRequest represents a JSON-RPC request received by the server.
type serverRequest struct {
	// JSON-RPC protocol.
	Version string `msgpack:"jsonrpc"`

	// A String containing the name of the method to be invoked.
	Method string `msgpack:"method"`

	// A Structured value to pass as arguments to the method.
	Params interface{} `msgpack:"params"`

	// The request id. MUST be a string, number or null.
	// Our implementation will not do type checking for id.
	// It will be copied as it is.
	ID interface{} `msgpack:"id"`
}

// serverResponse represents a JSON-RPC response returned by the server.
type serverResponse struct {
	// JSON-RPC protocol.
	Version string `msgpack:"jsonrpc"`

	// The Object that was returned by the invoked method. This must be null
	// in case there was an error invoking the method.
	// As per spec the member will be omitted if there was an error.
	Result interface{} `msgpack:"result,omitempty"`

	// An Error object if there was an error invoking the method. It must be
	// null if there was no error.
	// As per spec the member will be omitted if there was no error.
	Error *Error `msgpack:"error,omitempty"`

	// This must be the same id as the request it is responding to.
	ID interface{} `msgpack:"id"`
}

// Codec creates a CodecRequest to process each request.
type Codec struct{}

// NewCodec returns a new msgpack JSON-RPC 2.0 Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// NewRequest returns a CodecRequest.
func (c *Codec) NewRequest(r *http.Request) rpc.CodecRequest {
	req := new(serverRequest)
	err := msgpack.NewDecoder(r.Body).Decode(req)
	if err != nil {
		err = &Error{
			Code:    ErrParse,
			Message: err.Error(),
			Data:    req,
		}
	}
	r.Body.Close()
	return &CodecRequest{request: req, err: err}
}

// CodecRequest decodes and encodes a single request.
type CodecRequest struct {
	request *serverRequest
	err     error
}

// Method returns the RPC method for the request.
//
// The method uses a dotted notation as in "Service.Method".
func (c *CodecRequest) Method() (string, error) {
	if c.err == nil {
		return c.request.Method, nil
	}
	return "", c.err
}

// ReadRequest fills the request object for the RPC method.
//
// ReadRequest parses request parameters in two supported forms in
// accordance with the JSON-RPC spec:
//
// By-position: params MUST be an Array, containing the
// values in the Server expected order.
//
// By-name: params MUST be an Object, with member names
// that match the Server expected parameter names. The
// absence of expected names MAY result in an error being
// generated. The names MUST match exactly, including
// case, to the method's expected parameters.
func (c *CodecRequest) ReadRequest(args interface{}) error {
	if c.err == nil && c.request.Params != nil {
		// The params were decoded into an intermediate representation,
		// so re-encode and decode them into the target args value.
		// Unsupported shapes (e.g. positional params against a struct)
		// leave args at its zero value rather than failing the call.
		encoded, err := msgpack.Marshal(c.request.Params)
		if err == nil {
			// nolint:errcheck // zero-value args are the documented fallback
			msgpack.Unmarshal(encoded, args)
		}
	}
	return c.err
}

// WriteResponse encodes the response and writes it to the ResponseWriter.
func (c *CodecRequest) WriteResponse(w http.ResponseWriter, reply interface{}) {
	res := &serverResponse{
		Version: "2.0",
		Result:  reply,
		ID:      c.request.ID,
	}
	c.writeServerResponse(w, res)
}

// WriteError encodes the error and writes it to the ResponseWriter.
func (c *CodecRequest) WriteError(w http.ResponseWriter, status int, err error) {
	jsonErr, ok := err.(*Error)
	if !ok {
		jsonErr = &Error{
			Code:    ErrServer,
			Message: err.Error(),
		}
	}
	res := &serverResponse{
		Version: "2.0",
		Error:   jsonErr,
		ID:      c.request.ID,
	}
	c.writeServerResponse(w, res)
}

func (c *CodecRequest) writeServerResponse(w http.ResponseWriter, res *serverResponse) {
	// ID is null for notifications, and the server must not respond to
	// them.
	if c.request.ID != nil {
		w.Header().Set("Content-Type", "application/x-msgpack; charset=utf-8")
		encoder := msgpack.NewEncoder(w)
		// Not much we can do about the error here; the status is
		// already written.
		// nolint:errcheck
		encoder.Encode(res)
	}
}
