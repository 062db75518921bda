package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
	"github.com/vastrakart/assistant/internal/core/service"
)

// POST /v1/chat JSON {"message","userId"?} (200 OK, 400 Bad request)
// POST /v1/search JSON {"query","userId"?} (200 OK, 400 Bad request)
// POST /v1/preference JSON {"userId"?,"productId","action"} (200 OK, 400 Bad request)
// GET /v1/wishlist/{userId} (200 OK)

type AssistantHandler struct {
	chatter  port.Chatter
	searcher port.Searcher
	updater  port.PreferenceUpdater
	wishlist port.WishlistProvider
}

func RegisterAssistant(
	mux *http.ServeMux,
	chatter port.Chatter,
	searcher port.Searcher,
	updater port.PreferenceUpdater,
	wishlist port.WishlistProvider,
) {
	h := AssistantHandler{chatter, searcher, updater, wishlist}
	mux.HandleFunc("POST /v1/chat", h.PostChat)
	mux.HandleFunc("POST /v1/search", h.PostSearch)
	mux.HandleFunc("POST /v1/preference", h.PostPreference)
	mux.HandleFunc("GET /v1/wishlist/{userId}", h.GetWishlist)
}

func (h AssistantHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.PostChat"
	log := slog.With("op", op)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	reply, err := h.chatter.Chat(r.Context(), orGuest(req.UserID), req.Message)
	if err != nil {
		http.Error(w, "failed to process message", http.StatusServiceUnavailable)
		log.Error("failed to chat", "err", err)
		return
	}

	writeJSON(w, log, ChatResponse{
		Type:     string(reply.Type),
		Content:  reply.Content,
		Products: fromDomainProducts(reply.Products),
	})
}

func (h AssistantHandler) PostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.PostSearch"
	log := slog.With("op", op)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.searcher.Search(r.Context(), orGuest(req.UserID), req.Query)
	if err != nil {
		http.Error(w, "failed to search", http.StatusServiceUnavailable)
		log.Error("failed to search", "err", err)
		return
	}

	writeJSON(w, log, SearchResponse{
		Products: fromDomainProducts(res.Products),
		Filters:  fromDomainFilters(res.Filters),
		FollowUp: res.FollowUp,
	})
}

func (h AssistantHandler) PostPreference(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.PostPreference"
	log := slog.With("op", op)

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	prefs, err := h.updater.UpdatePreference(
		r.Context(),
		orGuest(req.UserID),
		req.ProductID,
		domain.PreferenceAction(req.Action),
	)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			http.Error(w, "invalid action", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to update preference", http.StatusServiceUnavailable)
		log.Error("failed to update preference", "err", err)
		return
	}

	writeJSON(w, log, PreferenceResponse{
		Success:     true,
		Preferences: fromDomainPreferences(prefs),
	})
}

func (h AssistantHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "AssistantHandler.GetWishlist"
	log := slog.With("op", op)

	userID := orGuest(r.PathValue("userId"))

	ps, err := h.wishlist.Wishlist(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to read wishlist", http.StatusServiceUnavailable)
		log.Error("failed to read wishlist", "err", err)
		return
	}

	writeJSON(w, log, WishlistResponse{Products: fromDomainProducts(ps)})
}

// POST /v1/payment/create JSON {"amount","currency"?} (200 OK, 400 Bad request)
// POST /v1/payment/verify JSON {"orderId","paymentId","signature"} (200 OK)

type PaymentsHandler struct {
	placer   port.OrderPlacer
	verifier port.PaymentVerifier
}

func RegisterPayments(
	mux *http.ServeMux,
	placer port.OrderPlacer,
	verifier port.PaymentVerifier,
) {
	h := PaymentsHandler{placer, verifier}
	mux.HandleFunc("POST /v1/payment/create", h.PostCreate)
	mux.HandleFunc("POST /v1/payment/verify", h.PostVerify)
}

func (h PaymentsHandler) PostCreate(w http.ResponseWriter, r *http.Request) {
	const op = "PaymentsHandler.PostCreate"
	log := slog.With("op", op)

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	order, err := h.placer.PlaceOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		http.Error(w, "failed to create order", http.StatusServiceUnavailable)
		log.Error("failed to place order", "err", err)
		return
	}

	writeJSON(w, log, CreateOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Mock:     order.Mock,
	})
}

func (h PaymentsHandler) PostVerify(w http.ResponseWriter, r *http.Request) {
	const op = "PaymentsHandler.PostVerify"
	log := slog.With("op", op)

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	verified, err := h.verifier.VerifyPayment(
		r.Context(), req.OrderID, req.PaymentID, req.Signature,
	)
	if err != nil {
		http.Error(w, "failed to verify payment", http.StatusServiceUnavailable)
		log.Error("failed to verify payment", "err", err)
		return
	}

	writeJSON(w, log, VerifyPaymentResponse{Success: true, Verified: verified})
}

func orGuest(userID string) string {
	if userID == "" {
		return domain.GuestUserID
	}
	return userID
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
