package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

type stubWithdrawalService struct {
	requestFn func(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error)
}

func (s *stubWithdrawalService) Request(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error) {
	return s.requestFn(ctx, userID, amount, method)
}

func TestWithdrawalHandler_Request_Success(t *testing.T) {
	e := newEcho()
	stub := &stubWithdrawalService{
		requestFn: func(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error) {
			if userID != "u1" || amount != 30 || method != "bank" {
				t.Fatalf("unexpected args: %s %d %s", userID, amount, method)
			}
			return &domain.Withdrawal{ID: "w1", UserID: userID, Amount: amount, Method: method, Status: domain.WithdrawalPending}, nil
		},
	}
	h := NewWithdrawalHandler(stub)

	req := jsonRequest(http.MethodPost, "/v1/withdrawals", `{"amount":30,"method":"bank"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := h.Request(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp withdrawResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.OK || resp.Withdrawal == nil || resp.Withdrawal.Status != domain.WithdrawalPending {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawalHandler_Request_InvalidAmount(t *testing.T) {
	e := newEcho()
	stub := &stubWithdrawalService{
		requestFn: func(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewWithdrawalHandler(stub)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{}`} {
		req := jsonRequest(http.MethodPost, "/v1/withdrawals", body)
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set("user_id", "u1")

		err := h.Request(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422 HTTPError, got %v", body, err)
		}
	}
}

func TestWithdrawalHandler_Request_InsufficientFunds(t *testing.T) {
	e := newEcho()
	stub := &stubWithdrawalService{
		requestFn: func(ctx context.Context, userID string, amount int64, method string) (*domain.Withdrawal, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}
	h := NewWithdrawalHandler(stub)

	req := jsonRequest(http.MethodPost, "/v1/withdrawals", `{"amount":100}`)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user_id", "u1")

	if err := h.Request(c); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds to propagate, got %v", err)
	}
}
