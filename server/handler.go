// Package server exposes the turn engine over HTTP. The engine stays a
// pure request/response function; this layer only decodes and encodes the
// envelope.
package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/acervolab/catalogagent/engine"
	"github.com/acervolab/catalogagent/types"
)

type Handler struct {
	engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

func (h *Handler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &types.Response{
			Type:    types.ResponseError,
			Message: "failed to read request body",
			Details: err.Error(),
		})
		return
	}

	var req types.Request
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &types.Response{
			Type:    types.ResponseError,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.engine.Turn(r.Context(), &req)
	if err != nil {
		slog.Error("turn failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, &types.Response{
			Type:    types.ResponseError,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, statusFor(resp), resp)
}

// statusFor maps the turn outcome to an HTTP status: precondition errors
// are bad requests, collaborator failures are upstream failures.
func statusFor(resp *types.Response) int {
	if resp.Type != types.ResponseError {
		return http.StatusOK
	}
	if resp.ErrorKind == types.ErrorCollaborator {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, payload *types.Response) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
