package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatekeephq/gatekeep/internal/auth/service"
	"github.com/gatekeephq/gatekeep/pkg/httpx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

type NodesHandler struct {
	Nodes *service.NodeService
}

// HandleCreate godoc
//
//	@Summary		Create a node
//	@Tags			Nodes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		NodeCreateRequest	true	"Node"
//	@Success		201		{object}	NodeResponse
//	@Failure		409		{object}	ErrorResponse	"node_exists"
//	@Security		SessionCookie
//	@Router			/v2/nodes [post].
func (h *NodesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NodeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
		return
	}

	node, err := h.Nodes.Create(ctx, req.ID, req.DefaultText)
	if err != nil {
		if errors.Is(err, service.ErrNodeExists) {
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error:            "node_exists",
				ErrorDescription: "A node with that id already exists",
			})
			return
		}
		slogx.FromContext(ctx).Error("failed to create node", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNodeResponse(node))
}

// HandleGet godoc
//
//	@Summary		Fetch a node
//	@Tags			Nodes
//	@Produce		json
//	@Param			id	path		string	true	"Node id"
//	@Success		200	{object}	NodeResponse
//	@Failure		404	{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/nodes/{id} [get].
func (h *NodesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	node, err := h.Nodes.Get(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNodeNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to fetch node", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toNodeResponse(node))
}

// HandleList godoc
//
//	@Summary		List nodes
//	@Tags			Nodes
//	@Produce		json
//	@Success		200	{array}	NodeResponse
//	@Security		SessionCookie
//	@Router			/v2/nodes [get].
func (h *NodesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nodes, err := h.Nodes.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list nodes", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}

	out := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = toNodeResponse(n)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate godoc
//
//	@Summary		Replace a node's default text
//	@Tags			Nodes
//	@Accept			json
//	@Param			id		path	string				true	"Node id"
//	@Param			request	body	NodeUpdateRequest	true	"New text"
//	@Success		204		"updated"
//	@Failure		404		{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/nodes/{id} [patch].
func (h *NodesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NodeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if err := h.Nodes.UpdateText(ctx, r.PathValue("id"), req.DefaultText); err != nil {
		if errors.Is(err, service.ErrNodeNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to update node", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete a node
//	@Tags			Nodes
//	@Param			id	path	string	true	"Node id"
//	@Success		204	"deleted"
//	@Failure		404	{object}	ErrorResponse	"not_found"
//	@Security		SessionCookie
//	@Router			/v2/nodes/{id} [delete].
func (h *NodesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Nodes.Delete(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrNodeNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found"})
			return
		}
		slogx.FromContext(ctx).Error("failed to delete node", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server_error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
