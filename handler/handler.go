// Package handler exposes the rehearsal endpoint: POST /rehearse runs one
// scripted conversation and returns the collected record and transcript.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"travel-intake-agent/internal/dialogue"
	"travel-intake-agent/internal/speech"
	"travel-intake-agent/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type Rehearser interface {
	Rehearse(ctx context.Context, in usecase.RehearseInput) (usecase.RehearseOutput, error)
}

type Handler struct {
	svc Rehearser
}

type rehearseRequest struct {
	Utterances []string `json:"utterances"`
	SessionID  string   `json:"sessionId,omitempty"`
}

type rehearseResponse struct {
	SessionID  string            `json:"sessionId"`
	FinalState string            `json:"finalState"`
	Record     map[string]string `json:"record"`
	Transcript []speech.Turn     `json:"transcript"`
	Persisted  bool              `json:"persisted"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func NewHandler(svc Rehearser) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: rehearse service must not be nil")
	}
	return &Handler{svc: svc}, nil
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)
	log := slog.With("correlation_id", corrID)

	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed, corrID, errorResponse{
			Error:  string(dialogue.ErrorInvalidInput),
			Reason: "method_not_allowed",
		}), nil
	}

	var body rehearseRequest
	dec := json.NewDecoder(strings.NewReader(req.Body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		log.Warn("rejecting malformed rehearsal request", "err", err)
		return jsonResponse(http.StatusBadRequest, corrID, errorResponse{
			Error:  string(dialogue.ErrorInvalidInput),
			Reason: "malformed_body",
		}), nil
	}

	out, err := h.svc.Rehearse(ctx, usecase.RehearseInput{
		Utterances: body.Utterances,
		SessionID:  body.SessionID,
	})
	if err != nil {
		status, resp := mapError(err)
		if status >= http.StatusInternalServerError {
			log.Error("rehearsal failed", "err", err)
		} else {
			log.Warn("rehearsal rejected", "reason", resp.Reason)
		}
		return jsonResponse(status, corrID, resp), nil
	}

	log.Info("rehearsal finished", "session", out.SessionID, "final", out.FinalState, "persisted", out.Persisted, "unused", out.Unused)
	record := out.Record
	if record == nil {
		record = map[string]string{}
	}
	return jsonResponse(http.StatusOK, corrID, rehearseResponse{
		SessionID:  out.SessionID,
		FinalState: string(out.FinalState),
		Record:     record,
		Transcript: out.Transcript,
		Persisted:  out.Persisted,
	}), nil
}

func mapError(err error) (int, errorResponse) {
	var de *dialogue.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, errorResponse{Error: string(dialogue.ErrorInternal)}
	}
	resp := errorResponse{Error: string(de.Code), Reason: de.Reason}
	if de.Code == dialogue.ErrorInvalidInput {
		return http.StatusBadRequest, resp
	}
	return http.StatusInternalServerError, resp
}

// correlationID returns the caller's correlation id, matched without regard
// to header case, or a new one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return uuid.NewString()
}

func jsonResponse(status int, corrID string, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(body),
	}
}
