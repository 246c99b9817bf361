package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"i4.energy/across/athost/device"
)

// Server handles incoming HTTP requests for interacting with the
// configured device instance
type Server struct {
	Logger *slog.Logger
	Device *device.Device
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /command", s.handleCommand)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// handleCommand runs one AT command line through the device and returns the
// rendered reply. Useful for exercising the command set without a serial
// terminal attached.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	type CommandRequest struct {
		Line string `json:"line"`
	}
	type CommandResponse struct {
		Reply string `json:"reply"`
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// An empty line is legal input: it renders an empty reply.
	reply := s.Device.Exec(req.Line)

	s.Logger.Info("Processed command line", "line", req.Line, "reply_length", len(reply))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommandResponse{Reply: reply})
}
