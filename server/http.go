package server

import (
	"encoding/json"
	"io"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/btcq-org/bounty/common"
	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"
)

const maxBodyBytes = 1 << 20

// TxRequest submits an execute message. The sender is trusted as given; the
// server is meant to sit behind an authenticating gateway.
type TxRequest struct {
	Sender string          `json:"sender"`
	Funds  string          `json:"funds,omitempty"`
	Msg    json.RawMessage `json:"msg"`
}

type FundRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
}

type InvariantResponse struct {
	Broken  bool   `json:"broken"`
	Message string `json:"message"`
}

func (s *Service) registerRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.countRequests)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/contract", s.handleContractInfo).Methods(http.MethodGet)
	r.HandleFunc("/bounties", s.handleListBounties).Methods(http.MethodGet)
	r.HandleFunc("/bounties/{id}", s.handleGetBounty).Methods(http.MethodGet)
	r.HandleFunc("/balances/{address}", s.handleBalances).Methods(http.MethodGet)
	r.HandleFunc("/invariants", s.handleInvariants).Methods(http.MethodGet)
	r.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/tx", s.handleTx).Methods(http.MethodPost)
	if s.cfg.Faucet {
		r.HandleFunc("/fund", s.handleFund).Methods(http.MethodPost)
	}
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Service) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.IncrRequest(route, rec.status)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error().Err(err).Msg("failed to write health response")
	}
}

func (s *Service) handleContractInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.app.Query(&bountytypes.QueryContractInfoRequest{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleListBounties(w http.ResponseWriter, r *http.Request) {
	resp, err := s.app.Query(&bountytypes.QueryBountiesRequest{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleGetBounty(w http.ResponseWriter, r *http.Request) {
	id, err := cast.ToUint64E(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, sdkerrors.ErrInvalidRequest.Wrapf("invalid bounty id: %v", err))
		return
	}
	resp, err := s.app.Query(&bountytypes.QueryBountyRequest{BountyID: id})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleBalances(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	coins, err := s.app.Balances(address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"address": address, "balances": coins})
}

func (s *Service) handleInvariants(w http.ResponseWriter, r *http.Request) {
	msg, broken := s.app.CheckInvariants()
	status := http.StatusOK
	if broken {
		status = http.StatusInternalServerError
		s.logger.Error().Str("invariant", msg).Msg("invariant broken")
	}
	s.writeJSON(w, status, InvariantResponse{Broken: broken, Message: msg})
}

func (s *Service) handleQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, sdkerrors.ErrInvalidRequest.Wrapf("failed to read body: %v", err))
		return
	}
	resp, err := s.app.QueryJSON(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleTx(w http.ResponseWriter, r *http.Request) {
	var req TxRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, sdkerrors.ErrJSONUnmarshal.Wrapf("tx request: %v", err))
		return
	}
	funds, err := common.ParseCoins(req.Funds)
	if err != nil {
		s.writeError(w, bountytypes.ErrInvalidFunds.Wrap(err.Error()))
		return
	}
	res, err := s.app.ExecuteJSON(req.Sender, funds, req.Msg)
	if err != nil {
		s.logger.Debug().Err(err).Str("sender", req.Sender).Msg("tx rejected")
		s.writeError(w, err)
		return
	}
	s.logger.Info().Int64("height", res.Height).Str("sender", req.Sender).Msg("tx committed")
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleFund(w http.ResponseWriter, r *http.Request) {
	var req FundRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, sdkerrors.ErrJSONUnmarshal.Wrapf("fund request: %v", err))
		return
	}
	coins, err := common.ParseCoins(req.Amount)
	if err != nil {
		s.writeError(w, sdkerrors.ErrInvalidCoins.Wrap(err.Error()))
		return
	}
	res, err := s.app.Fund(req.Address, coins)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	s.writeJSON(w, httpStatus(err), ErrorResponse{
		Error:     err.Error(),
		Codespace: codespace,
		Code:      code,
	})
}

func httpStatus(err error) int {
	switch {
	case errorsmod.IsOf(err, bountytypes.ErrBountyNotFound, sdkerrors.ErrNotFound):
		return http.StatusNotFound
	case errorsmod.IsOf(err, bountytypes.ErrUnauthorized, sdkerrors.ErrUnauthorized):
		return http.StatusForbidden
	case errorsmod.IsOf(err, bountytypes.ErrBountyClosed, bountytypes.ErrBountyExpired, bountytypes.ErrAlreadyInstantiated):
		return http.StatusConflict
	case errorsmod.IsOf(err, bountytypes.ErrNotInstantiated):
		return http.StatusServiceUnavailable
	}
	if codespace, _, _ := errorsmod.ABCIInfo(err, false); codespace == errorsmod.UndefinedCodespace {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
