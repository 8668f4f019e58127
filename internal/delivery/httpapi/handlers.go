package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"mclink/internal/application"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type joinRequest struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type joinResponse struct {
	Linked           bool   `json:"linked"`
	MinecraftName    string `json:"minecraft_name,omitempty"`
	DiscordName      string `json:"discord_name,omitempty"`
	Code             string `json:"code,omitempty"`
	ExpiresInMinutes int    `json:"expires_in_minutes,omitempty"`
}

type linkResponse struct {
	Linked        bool   `json:"linked"`
	MinecraftName string `json:"minecraft_name,omitempty"`
	DiscordID     string `json:"discord_id,omitempty"`
	DiscordName   string `json:"discord_name,omitempty"`
	PendingCode   string `json:"pending_code,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleJoin is called by the game server for every joining player.
// A linked player gets a pass-through; an unlinked one gets a fresh
// verification code to show on the kick screen.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if _, err := uuid.Parse(req.UUID); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid minecraft uuid"})
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing player name"})
		return
	}

	if link := s.services.Linking.GetLinkInfo(req.UUID); link != nil {
		respondJSON(w, http.StatusOK, joinResponse{
			Linked:        true,
			MinecraftName: link.MinecraftName,
			DiscordName:   link.DiscordName,
		})
		return
	}

	code, err := s.services.Linking.IssueCode(req.UUID, req.Name, s.codeExpiryMinutes)
	if err != nil {
		if errors.Is(err, application.ErrCodeSpaceExhausted) {
			s.logger.Warn("join: code space exhausted for %s", req.UUID)
		} else {
			s.logger.Error("join: failed to issue code for %s: %v", req.UUID, err)
		}
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "could not issue a code, try again"})
		return
	}

	respondJSON(w, http.StatusOK, joinResponse{
		Linked:           false,
		Code:             code,
		ExpiresInMinutes: s.codeExpiryMinutes,
	})
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	mcUUID := chi.URLParam(r, "uuid")
	if _, err := uuid.Parse(mcUUID); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid minecraft uuid"})
		return
	}

	resp := linkResponse{}
	if link := s.services.Linking.GetLinkInfo(mcUUID); link != nil {
		resp.Linked = true
		resp.MinecraftName = link.MinecraftName
		resp.DiscordID = link.DiscordID
		resp.DiscordName = link.DiscordName
	}
	if pending := s.services.Linking.GetPendingCode(mcUUID); pending != nil {
		resp.PendingCode = pending.Code
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnlink(w http.ResponseWriter, r *http.Request) {
	mcUUID := chi.URLParam(r, "uuid")
	if _, err := uuid.Parse(mcUUID); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid minecraft uuid"})
		return
	}

	if !s.services.Linking.Unlink(mcUUID) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not linked"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
