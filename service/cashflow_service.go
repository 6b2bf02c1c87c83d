package service

import (
	"log"
	"sort"
	"strings"
	"time"

	"agroio.app/errors"
	"agroio.app/models"
	"agroio.app/pkg/validation"
)

var italianShortMonths = [12]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"}

// CashFlowService handles bookkeeping and its aggregated views
type CashFlowService struct {
	transactionRepo TransactionRepositoryInterface
	contactRepo     ContactRepositoryInterface
}

// NewCashFlowService creates a new cash flow service
func NewCashFlowService(transactionRepo TransactionRepositoryInterface, contactRepo ContactRepositoryInterface) *CashFlowService {
	return &CashFlowService{
		transactionRepo: transactionRepo,
		contactRepo:     contactRepo,
	}
}

// ListTransactions returns all movements, most recent first
func (s *CashFlowService) ListTransactions() ([]models.Transaction, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list transactions", err)
	}
	return transactions, nil
}

// ListContacts returns the address book
func (s *CashFlowService) ListContacts() ([]models.Contact, error) {
	contacts, err := s.contactRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list contacts", err)
	}
	return contacts, nil
}

// AddTransaction records a movement and, when the request carries a new
// address book entry, merges it into the directory. Matching an existing
// contact is case-insensitive and only fills in phone and email when the
// request provides them.
func (s *CashFlowService) AddTransaction(req *models.TransactionRequest) (*models.Transaction, error) {
	log.Printf("[DEBUG] CashFlowService.AddTransaction: %s %.2f (%s)\n", req.Type, req.Amount, req.Description)

	if err := s.validateTransactionRequest(req); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	transaction := &models.Transaction{
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		ContactName: strings.TrimSpace(req.ContactName),
		Quantity:    req.Quantity,
		Unit:        req.Unit,
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, errors.NewDatabaseError("failed to create transaction", err)
	}

	if req.NewContact != nil && strings.TrimSpace(req.NewContact.Name) != "" {
		if err := s.upsertContact(req.NewContact); err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

func (s *CashFlowService) validateTransactionRequest(req *models.TransactionRequest) error {
	if !validation.IsNotEmpty(req.Description) {
		return errors.NewValidationError("description is required")
	}
	if !validation.IsNotEmpty(req.ContactName) {
		return errors.NewValidationError("contact name is required")
	}
	if !validation.IsPositiveAmount(req.Amount) {
		return errors.NewValidationError("amount must be a positive number")
	}
	if req.Quantity != nil && !validation.IsNonNegativeAmount(*req.Quantity) {
		return errors.NewValidationError("quantity cannot be negative")
	}
	return nil
}

func (s *CashFlowService) upsertContact(req *models.NewContactRequest) error {
	name := strings.TrimSpace(req.Name)

	existing, err := s.contactRepo.FindByNameInsensitive(name)
	if err != nil {
		return errors.NewDatabaseError("failed to look up contact", err)
	}

	if existing == nil {
		contact := &models.Contact{Name: name, Phone: req.Phone, Email: req.Email}
		if err := s.contactRepo.Create(contact); err != nil {
			return errors.NewDatabaseError("failed to create contact", err)
		}
		return nil
	}

	changed := false
	if req.Phone != "" && existing.Phone != req.Phone {
		existing.Phone = req.Phone
		changed = true
	}
	if req.Email != "" && existing.Email != req.Email {
		existing.Email = req.Email
		changed = true
	}
	if changed {
		if err := s.contactRepo.Update(existing); err != nil {
			return errors.NewDatabaseError("failed to update contact", err)
		}
	}
	return nil
}

// GetSummary aggregates totals and resolves the customer and supplier lists
func (s *CashFlowService) GetSummary() (*models.CashFlowSummary, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list transactions", err)
	}
	contacts, err := s.contactRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list contacts", err)
	}

	summary := BuildSummary(transactions, contacts)
	return &summary, nil
}

// GetAgenda merges the directory with per-contact transaction totals
func (s *CashFlowService) GetAgenda() ([]models.AgendaContact, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list transactions", err)
	}
	contacts, err := s.contactRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list contacts", err)
	}

	return BuildAgenda(transactions, contacts), nil
}

// GetProductHistory groups movements of one direction by product
func (s *CashFlowService) GetProductHistory(transactionType models.TransactionType) ([]models.ProductHistoryItem, error) {
	if transactionType != models.TransactionIncome && transactionType != models.TransactionExpense {
		return nil, errors.NewValidationError("type must be either 'income' or 'expense'")
	}

	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list transactions", err)
	}

	return BuildProductHistory(transactions, transactionType), nil
}

// GetPerformanceChart builds the six month income and expense chart
func (s *CashFlowService) GetPerformanceChart() (*models.PerformanceChart, error) {
	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list transactions", err)
	}

	chart := BuildPerformanceChart(transactions, time.Now())
	return &chart, nil
}

// BuildSummary computes totals and the customer and supplier lists. Customers
// and suppliers are the distinct contact names from income and expense
// movements, resolved against the directory in first-seen order. Names not in
// the directory are dropped.
func BuildSummary(transactions []models.Transaction, contacts []models.Contact) models.CashFlowSummary {
	byName := make(map[string]models.Contact, len(contacts))
	for _, c := range contacts {
		byName[c.Name] = c
	}

	resolve := func(transactionType models.TransactionType) []models.Contact {
		seen := make(map[string]bool)
		resolved := []models.Contact{}
		for _, t := range transactions {
			if t.Type != transactionType || seen[t.ContactName] {
				continue
			}
			seen[t.ContactName] = true
			if contact, ok := byName[t.ContactName]; ok {
				resolved = append(resolved, contact)
			}
		}
		return resolved
	}

	summary := models.CashFlowSummary{
		Customers: resolve(models.TransactionIncome),
		Suppliers: resolve(models.TransactionExpense),
	}
	for _, t := range transactions {
		if t.Type == models.TransactionIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpense += t.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary
}

// BuildAgenda unions directory entries with every name seen in transactions.
// Totals are signed, income positive and expenses negative. Directory-only
// contacts appear with zero totals, names only seen in transactions appear
// without phone and email. The result is sorted by name ignoring case.
func BuildAgenda(transactions []models.Transaction, contacts []models.Contact) []models.AgendaContact {
	type totals struct {
		amount float64
		count  int
	}
	byName := make(map[string]*totals)
	order := []string{}

	for _, t := range transactions {
		entry, ok := byName[t.ContactName]
		if !ok {
			entry = &totals{}
			byName[t.ContactName] = entry
			order = append(order, t.ContactName)
		}
		if t.Type == models.TransactionIncome {
			entry.amount += t.Amount
		} else {
			entry.amount -= t.Amount
		}
		entry.count++
	}

	details := make(map[string]models.Contact, len(contacts))
	for _, c := range contacts {
		details[c.Name] = c
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = &totals{}
			order = append(order, c.Name)
		}
	}

	agenda := make([]models.AgendaContact, 0, len(order))
	for _, name := range order {
		entry := byName[name]
		contact := models.AgendaContact{
			Name:             name,
			TotalAmount:      entry.amount,
			TransactionCount: entry.count,
		}
		if d, ok := details[name]; ok {
			contact.Phone = d.Phone
			contact.Email = d.Email
		}
		agenda = append(agenda, contact)
	}

	sort.Slice(agenda, func(i, j int) bool {
		return strings.ToLower(agenda[i].Name) < strings.ToLower(agenda[j].Name)
	})

	return agenda
}

// BuildProductHistory groups movements of the given direction by product.
// Products are keyed by trimmed, lowercased description while the displayed
// name keeps the first-seen original spelling. The unit is the first
// non-empty one of the group, falling back to "unità" when quantities exist,
// and units are never converted between each other.
func BuildProductHistory(transactions []models.Transaction, transactionType models.TransactionType) []models.ProductHistoryItem {
	type group struct {
		name         string
		transactions []models.Transaction
	}
	grouped := make(map[string]*group)
	order := []string{}

	for _, t := range transactions {
		if t.Type != transactionType {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(t.Description))
		g, ok := grouped[key]
		if !ok {
			g = &group{name: t.Description}
			grouped[key] = g
			order = append(order, key)
		}
		g.transactions = append(g.transactions, t)
	}

	history := make([]models.ProductHistoryItem, 0, len(order))
	for _, key := range order {
		g := grouped[key]

		item := models.ProductHistoryItem{
			ProductName:      g.name,
			TransactionCount: len(g.transactions),
		}
		seenContacts := make(map[string]bool)
		for _, t := range g.transactions {
			item.TotalAmount += t.Amount
			if t.Quantity != nil {
				item.TotalQuantity += *t.Quantity
			}
			if item.Unit == "" && t.Unit != "" {
				item.Unit = t.Unit
			}
			if !seenContacts[t.ContactName] {
				seenContacts[t.ContactName] = true
				item.Contacts = append(item.Contacts, t.ContactName)
			}
		}
		if item.Unit == "" && item.TotalQuantity > 0 {
			item.Unit = "unità"
		}
		if item.TotalQuantity > 0 {
			item.AveragePricePerUnit = item.TotalAmount / item.TotalQuantity
		}

		history = append(history, item)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].TotalAmount > history[j].TotalAmount
	})

	return history
}

// BuildPerformanceChart buckets movements into the last six calendar months.
// The reference day is normalized to the first of the month so month
// arithmetic never skips short months. The ceiling is floored at 1 to keep
// chart scaling well defined with no data.
func BuildPerformanceChart(transactions []models.Transaction, now time.Time) models.PerformanceChart {
	type bucket struct {
		year  int
		month time.Month
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]models.MonthlyPerformance, 6)
	index := make(map[bucket]int, 6)
	for i := 0; i < 6; i++ {
		m := first.AddDate(0, i-5, 0)
		months[i] = models.MonthlyPerformance{Month: italianShortMonths[m.Month()-1]}
		index[bucket{m.Year(), m.Month()}] = i
	}

	for _, t := range transactions {
		i, ok := index[bucket{t.Date.Year(), t.Date.Month()}]
		if !ok {
			continue
		}
		if t.Type == models.TransactionIncome {
			months[i].Income += t.Amount
		} else {
			months[i].Expense += t.Amount
		}
	}

	maxAmount := 0.0
	for _, m := range months {
		if m.Income > maxAmount {
			maxAmount = m.Income
		}
		if m.Expense > maxAmount {
			maxAmount = m.Expense
		}
	}
	if maxAmount <= 0 {
		maxAmount = 1
	}

	return models.PerformanceChart{Months: months, MaxAmount: maxAmount}
}
