package handlers

import (
	"net/http"

	"github.com/dom/league-ledger/internal/api/middleware"
	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type GroupResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	Members     []UserResponse `json:"members"`
}

type GroupMessageResponse struct {
	Message string        `json:"message"`
	Group   GroupResponse `json:"group"`
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	groups, err := h.groupService.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	groupID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	group, err := h.groupService.Get(r.Context(), userID, groupID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, GroupMessageResponse{
		Message: "Group created successfully",
		Group:   toGroupResponse(group),
	})
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	groupID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	group, err := h.groupService.AddMember(r.Context(), userID, groupID, req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GroupMessageResponse{
		Message: "Member added successfully",
		Group:   toGroupResponse(group),
	})
}

func toGroupResponse(g *domain.Group) GroupResponse {
	members := make([]UserResponse, len(g.Members))
	for i := range g.Members {
		members[i] = toUserResponse(&g.Members[i])
	}

	return GroupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy.String(),
		Members:     members,
	}
}
