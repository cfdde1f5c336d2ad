package http

import (
	"errors"
	"net/http"
	"sync/atomic"

	"financas/internal/core"
	"financas/internal/ledger"
	"financas/internal/log"
)

// recordMutation bumps the mutation counter and drops every cached view.
func (s *Server) recordMutation() {
	atomic.AddInt64(&s.appMetrics.totalMutations, 1)
	s.invalidateViews()
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, entity string, del func() error) {
	id := r.PathValue("id")
	if err := del(); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, entity+" not found")
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Delete failed",
			log.FieldError, err,
			log.FieldEntity, entity,
			log.FieldEntityID, id,
			log.FieldOperation, log.OpDelete)
		writeError(w, http.StatusInternalServerError, "error deleting "+entity)
		return
	}
	s.recordMutation()
	w.WriteHeader(http.StatusNoContent)
}

// Transactions

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error listing transactions")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := decodeJSON(w, r, &tx); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx.ID = ""
	tx.Description = sanitizeInput(tx.Description)
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create transaction failed",
			log.FieldError, err,
			log.FieldEntity, "transaction",
			log.FieldAmountCents, tx.Amount.Cents,
			log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving transaction")
		return
	}

	s.recordMutation()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, "transaction", func() error {
		return s.store.DeleteTransaction(r.Context(), r.PathValue("id"))
	})
}

// Accounts

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List accounts failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error listing accounts")
		return
	}
	if accounts == nil {
		accounts = []core.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.Account
	if err := decodeJSON(w, r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = ""
	a.Name = sanitizeInput(a.Name)
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateAccount(r.Context(), a)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create account failed",
			log.FieldError, err, log.FieldEntity, "account", log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving account")
		return
	}

	s.recordMutation()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, "account", func() error {
		return s.store.DeleteAccount(r.Context(), r.PathValue("id"))
	})
}

// Categories

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List categories failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error listing categories")
		return
	}
	if cats == nil {
		cats = []core.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.ID = ""
	c.Name = sanitizeInput(c.Name)
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateCategory(r.Context(), c)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create category failed",
			log.FieldError, err, log.FieldEntity, "category", log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving category")
		return
	}

	s.recordMutation()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, "category", func() error {
		return s.store.DeleteCategory(r.Context(), r.PathValue("id"))
	})
}

// Budgets

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.store.ListBudgets(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List budgets failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error listing budgets")
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if err := decodeJSON(w, r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.ID = ""
	b.Description = sanitizeInput(b.Description)
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateBudget(r.Context(), b)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create budget failed",
			log.FieldError, err, log.FieldEntity, "budget", log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving budget")
		return
	}

	s.recordMutation()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, "budget", func() error {
		return s.store.DeleteBudget(r.Context(), r.PathValue("id"))
	})
}

// Contributions

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
	contribs, err := s.store.ListContributions(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List contributions failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "error listing contributions")
		return
	}
	if contribs == nil {
		contribs = []core.Contribution{}
	}
	writeJSON(w, http.StatusOK, contribs)
}

func (s *Server) handleCreateContribution(w http.ResponseWriter, r *http.Request) {
	var c core.Contribution
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.ID = ""
	c.Notes = sanitizeInput(c.Notes)
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateContribution(r.Context(), c)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create contribution failed",
			log.FieldError, err, log.FieldEntity, "contribution", log.FieldOperation, log.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving contribution")
		return
	}

	s.recordMutation()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteContribution(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, "contribution", func() error {
		return s.store.DeleteContribution(r.Context(), r.PathValue("id"))
	})
}
