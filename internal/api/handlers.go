package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/service"
)

// Server bundles the application services behind the HTTP handlers.
type Server struct {
	Auth      *service.AuthService
	Groups    *service.GroupService
	Expenses  *service.ExpenseService
	Transfers *service.TransferService
	Balances  *service.BalanceService
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	user, token, err := s.Auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	user, token, err := s.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	group, err := s.Groups.CreateGroup(r.Context(), UserID(r.Context()), req.Name, req.Members)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.Groups.GetGroup(r.Context(), UserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Groups.ListGroups(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleUpdateGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Members []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	group, err := s.Groups.UpdateMembers(r.Context(), UserID(r.Context()), chi.URLParam(r, "groupID"), req.Members)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.Groups.DeleteGroup(r.Context(), UserID(r.Context()), chi.URLParam(r, "groupID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shareRequest struct {
	UserID string  `json:"user_id"`
	Paid   float64 `json:"paid"`
	Owed   float64 `json:"owed"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID     string         `json:"group_id"`
		Description string         `json:"description"`
		Total       float64        `json:"total"`
		Shares      []shareRequest `json:"shares"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		Description: req.Description,
		Total:       req.Total,
	}
	for _, share := range req.Shares {
		expense.Shares = append(expense.Shares, models.ExpenseShare{
			UserID: share.UserID,
			Paid:   share.Paid,
			Owed:   share.Owed,
		})
	}

	created, err := s.Expenses.CreateExpense(r.Context(), UserID(r.Context()), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.Expenses.ListGroupExpenses(r.Context(), UserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.Expenses.DeleteExpense(r.Context(), UserID(r.Context()), chi.URLParam(r, "expenseID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID    string  `json:"group_id"`
		FromUserID string  `json:"from_user_id"`
		ToUserID   string  `json:"to_user_id"`
		Amount     float64 `json:"amount"`
		Note       string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "bad request body")
		return
	}

	transfer := &models.Transfer{
		GroupID:    req.GroupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Note:       req.Note,
	}
	created, err := s.Transfers.RecordTransfer(r.Context(), UserID(r.Context()), transfer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransfer(w http.ResponseWriter, r *http.Request) {
	if err := s.Transfers.DeleteTransfer(r.Context(), UserID(r.Context()), chi.URLParam(r, "transferID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFriendBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.Balances.FriendBalance(r.Context(), UserID(r.Context()), chi.URLParam(r, "friendID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (s *Server) handleGroupDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.Balances.GroupDebts(r.Context(), UserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}
