package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/filter"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/view"
)

type (
	transactionResponse struct {
		ID          int64  `json:"id"`
		Amount      string `json:"amount"`
		Display     string `json:"display"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Category    string `json:"category"`
		Icon        string `json:"icon"`
		Meta        string `json:"meta"`
		Negative    bool   `json:"negative"`
	}

	groupResponse struct {
		Date         string                `json:"date"`
		Label        string                `json:"label"`
		Transactions []transactionResponse `json:"transactions"`
	}

	summaryResponse struct {
		Balance          string `json:"balance"`
		Expense          string `json:"expense"`
		Income           string `json:"income"`
		BalancePercent   int    `json:"balancePercent"`
		ExpensePercent   int    `json:"expensePercent"`
		IncomePercent    int    `json:"incomePercent"`
		TransactionCount int    `json:"transactionCount"`
		ExpenseCount     int    `json:"expenseCount"`
		IncomeCount      int    `json:"incomeCount"`
	}

	shareResponse struct {
		Category string `json:"category"`
		Name     string `json:"name"`
		Icon     string `json:"icon"`
		Color    string `json:"color"`
		Amount   string `json:"amount"`
		Percent  int    `json:"percent"`
	}

	weeklyResponse struct {
		Labels  []string `json:"labels"`
		Expense []string `json:"expense"`
		Income  []string `json:"income"`
	}

	dashboardResponse struct {
		Summary    summaryResponse `json:"summary"`
		Categories []shareResponse `json:"categories"`
		Weekly     weeklyResponse  `json:"weekly"`
		Groups     []groupResponse `json:"groups"`
		Currency   string          `json:"currency"`
		Filtered   bool            `json:"filtered"`
	}

	createTransactionRequest struct {
		Type        string          `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
		Category    string          `json:"category"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// filterFromRequest builds the filter from query parameters, falling
// back to the persisted month/year selections when the request does not
// name them. "all" clears a selection for this request.
func (s *Server) filterFromRequest(r *http.Request) (filter.Filter, error) {
	f, err := s.tracker.StoredFilter(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return f, err
	}

	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		if v == "all" {
			f.Month = nil
		} else if n, err := strconv.Atoi(v); err == nil {
			f.Month = &n
		}
	}
	if v := q.Get("year"); v != "" {
		if v == "all" {
			f.Year = nil
		} else if n, err := strconv.Atoi(v); err == nil {
			f.Year = &n
		}
	}
	return f, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromRequest(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	txs, err := s.tracker.Transactions(r.Context(), f)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	currency, err := s.settings.Currency(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	today := core.DayOf(s.now())
	groups := make([]groupResponse, 0)
	for _, g := range view.GroupByDate(txs, today) {
		groups = append(groups, newGroupResponse(g, currency))
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := core.Kind(req.Type)
	if req.Type == "" {
		kind = core.Expense
	}

	date := core.DayOf(s.now())
	if req.Date != "" {
		parsed, err := core.ParseDay(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	tx, err := s.tracker.AddTransaction(r.Context(), kind, req.Amount, req.Description, date, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "amount must be greater than 0")
		case errors.Is(err, core.ErrEmptyDescription):
			writeError(w, http.StatusBadRequest, "description is required")
		case errors.Is(err, core.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, "type must be expense or income")
		case errors.Is(err, core.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "invalid date")
		default:
			s.serverError(w, r, err)
		}
		return
	}

	s.invalidate()

	currency, err := s.settings.Currency(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionResponse(view.NewRow(tx), currency))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromRequest(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	cacheKey := dashboardCacheKey(f, core.DayOf(s.now()))
	if body, ok := s.dashboards.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	d, err := s.tracker.Dashboard(r.Context(), f, core.DayOf(s.now()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	body, err := json.Marshal(newDashboardResponse(d))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.dashboards.Set(cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.settings.Accounts(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	account, err := s.settings.AddAccount(r.Context(), req.Name)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.settings.Reminders(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	reminder, err := s.settings.AddReminder(r.Context(), req.Text, core.DayOf(s.now()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleToggleReminder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	if err := s.settings.ToggleReminder(r.Context(), id); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currency, err := s.settings.Currency(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	defaultCurrency, err := s.settings.DefaultCurrency(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	selectedAccount, err := s.settings.SelectedAccount(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	resp := map[string]any{
		"currency":        currency.Code,
		"defaultCurrency": defaultCurrency.Code,
		"currencies":      core.CurrencyCodes(),
		"selectedAccount": selectedAccount,
	}

	if month, ok, err := s.settings.SelectedMonth(ctx); err != nil {
		s.serverError(w, r, err)
		return
	} else if ok {
		resp["selectedMonth"] = month
	}
	if year, ok, err := s.settings.SelectedYear(ctx); err != nil {
		s.serverError(w, r, err)
		return
	} else if ok {
		resp["selectedYear"] = year
	}

	for _, key := range []string{"theme", "language", "dateFormat", "startOfWeek"} {
		if v, ok, err := s.settings.Preference(ctx, key); err != nil {
			s.serverError(w, r, err)
			return
		} else if ok {
			resp[key] = v
		}
	}
	for _, key := range []string{"multiCurrency", "notifyReminders", "notifyBudgets"} {
		v, err := s.settings.BoolPreference(ctx, key)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		resp[key] = v
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency        *string `json:"currency"`
		SelectedAccount *string `json:"selectedAccount"`
		SelectedMonth   *int    `json:"selectedMonth"`
		ClearMonth      bool    `json:"clearMonth"`
		SelectedYear    *int    `json:"selectedYear"`
		ClearYear       bool    `json:"clearYear"`
		Theme           *string `json:"theme"`
		Language        *string `json:"language"`
		DateFormat      *string `json:"dateFormat"`
		StartOfWeek     *string `json:"startOfWeek"`
		MultiCurrency   *bool   `json:"multiCurrency"`
		NotifyReminders *bool   `json:"notifyReminders"`
		NotifyBudgets   *bool   `json:"notifyBudgets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if req.Currency != nil {
		if err := s.settings.SetCurrency(ctx, *req.Currency); err != nil {
			writeError(w, http.StatusBadRequest, "unknown currency code")
			return
		}
	}
	if req.SelectedAccount != nil {
		if err := s.settings.SetSelectedAccount(ctx, *req.SelectedAccount); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	if req.SelectedMonth != nil || req.ClearMonth {
		if err := s.settings.SetSelectedMonth(ctx, req.SelectedMonth); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	if req.SelectedYear != nil || req.ClearYear {
		if err := s.settings.SetSelectedYear(ctx, req.SelectedYear); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	stringPrefs := map[string]*string{
		"theme":       req.Theme,
		"language":    req.Language,
		"dateFormat":  req.DateFormat,
		"startOfWeek": req.StartOfWeek,
	}
	for key, value := range stringPrefs {
		if value == nil {
			continue
		}
		if err := s.settings.SetPreference(ctx, key, *value); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	boolPrefs := map[string]*bool{
		"multiCurrency":   req.MultiCurrency,
		"notifyReminders": req.NotifyReminders,
		"notifyBudgets":   req.NotifyBudgets,
	}
	for key, value := range boolPrefs {
		if value == nil {
			continue
		}
		if err := s.settings.SetBoolPreference(ctx, key, *value); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeeklyChart(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromRequest(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	d, err := s.tracker.Dashboard(r.Context(), f, core.DayOf(s.now()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.renderer.WeeklyBars(w, d.Weekly); err != nil {
		slog.ErrorContext(r.Context(), "Weekly chart render failed", "error", err)
	}
}

func (s *Server) handleBalanceChart(w http.ResponseWriter, r *http.Request) {
	f, err := s.filterFromRequest(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	d, err := s.tracker.Dashboard(r.Context(), f, core.DayOf(s.now()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.renderer.BalanceDonut(w, d.Summary); err != nil {
		slog.ErrorContext(r.Context(), "Balance chart render failed", "error", err)
	}
}

func newDashboardResponse(d services.Dashboard) dashboardResponse {
	summary := summaryResponse{
		Balance:          d.Currency.Format(d.Summary.Balance),
		Expense:          "-" + d.Currency.Format(d.Summary.TotalExpense),
		Income:           "+" + d.Currency.Format(d.Summary.TotalIncome),
		BalancePercent:   d.Summary.BalancePercent,
		ExpensePercent:   d.Summary.ExpensePercent,
		IncomePercent:    d.Summary.IncomePercent,
		TransactionCount: d.Summary.TransactionCount,
		ExpenseCount:     d.Summary.ExpenseCount,
		IncomeCount:      d.Summary.IncomeCount,
	}

	categories := make([]shareResponse, 0, len(d.Breakdown))
	for _, share := range d.Breakdown {
		categories = append(categories, shareResponse{
			Category: share.Category.Key,
			Name:     share.Category.Name,
			Icon:     share.Category.Icon,
			Color:    share.Category.Color,
			Amount:   d.Currency.Format(share.Amount),
			Percent:  share.Percent,
		})
	}

	weekly := weeklyResponse{
		Labels:  d.Weekly.Labels,
		Expense: make([]string, 0, len(d.Weekly.Expense)),
		Income:  make([]string, 0, len(d.Weekly.Income)),
	}
	for i := range d.Weekly.Expense {
		weekly.Expense = append(weekly.Expense, d.Weekly.Expense[i].String())
		weekly.Income = append(weekly.Income, d.Weekly.Income[i].String())
	}

	groups := make([]groupResponse, 0, len(d.Groups))
	for _, g := range d.Groups {
		groups = append(groups, newGroupResponse(g, d.Currency))
	}

	return dashboardResponse{
		Summary:    summary,
		Categories: categories,
		Weekly:     weekly,
		Groups:     groups,
		Currency:   d.Currency.Code,
		Filtered:   d.Filtered,
	}
}

func newGroupResponse(g view.Group, currency core.Currency) groupResponse {
	resp := groupResponse{
		Date:         g.Date.String(),
		Label:        g.Label,
		Transactions: make([]transactionResponse, 0, len(g.Rows)),
	}
	for _, row := range g.Rows {
		resp.Transactions = append(resp.Transactions, newTransactionResponse(row, currency))
	}
	return resp
}

func newTransactionResponse(row view.Row, currency core.Currency) transactionResponse {
	t := row.Transaction
	return transactionResponse{
		ID:          t.ID,
		Amount:      t.Amount.String(),
		Display:     row.Sign + currency.Format(t.Amount),
		Description: t.Description,
		Date:        t.Date.String(),
		Category:    t.CategoryKey(),
		Icon:        row.Icon,
		Meta:        row.Meta,
		Negative:    row.Negative,
	}
}

// dashboardCacheKey includes today's date so cached weekly series roll
// over at midnight.
func dashboardCacheKey(f filter.Filter, today core.Day) string {
	month := "all"
	if f.Month != nil {
		month = strconv.Itoa(*f.Month)
	}
	year := "all"
	if f.Year != nil {
		year = strconv.Itoa(*f.Year)
	}
	return "m:" + month + "|y:" + year + "|q:" + f.Search + "|d:" + today.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Request failed",
		log.FieldError, err,
		log.FieldPath, r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error")
}
