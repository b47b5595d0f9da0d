// Package memory implementa los repositorios en memoria. Se usa en tests y con
// STORE_DRIVER=memory para correr la aplicación sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
	"github.com/jhoicas/cadastro-clientes/internal/domain/period"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

var (
	_ repository.ClientRepository = (*Store)(nil)
	_ repository.ReportRepository = (*Store)(nil)
)

// Store guarda los clientes en un mapa protegido por mutex. Implementa
// ClientRepository y ReportRepository con la misma semántica que PostgreSQL.
type Store struct {
	mu       sync.RWMutex
	clients  map[int64]entity.Client
	nextID   int64
	collator *collate.Collator
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		clients:  make(map[int64]entity.Client),
		collator: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
}

// List devuelve copias de los clientes ordenadas por nombre (colación pt-BR).
func (s *Store) List(_ context.Context, query string) ([]*entity.Client, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	var list []*entity.Client
	for _, c := range s.clients {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		list = append(list, cloneClient(c))
	}
	// El collator no es seguro para uso concurrente; se usa bajo el lock exclusivo.
	sort.Slice(list, func(i, j int) bool {
		if cmp := s.collator.CompareString(list[i].Name, list[j].Name); cmp != 0 {
			return cmp < 0
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (s *Store) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, nil
	}
	return cloneClient(c), nil
}

// Create asigna un ID secuencial; el CPF debe ser único.
func (s *Store) Create(_ context.Context, client *entity.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idNumberTaken(client.IDNumber, 0) {
		return domain.ErrDuplicateIDNumber
	}
	s.nextID++
	client.ID = s.nextID
	s.clients[client.ID] = *cloneClient(*client)
	return nil
}

// Update reemplaza los campos editables conservando la fecha de cadastro guardada.
func (s *Store) Update(_ context.Context, client *entity.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.clients[client.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if s.idNumberTaken(client.IDNumber, client.ID) {
		return domain.ErrDuplicateIDNumber
	}
	updated := *cloneClient(*client)
	updated.RegistrationDate = current.RegistrationDate
	s.clients[client.ID] = updated
	return nil
}

// Delete es idempotente.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
	return nil
}

// Count cantidad de clientes guardados.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// AverageIncome promedio sobre todos los clientes con renda; cero si no hay.
func (s *Store) AverageIncome(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	n := 0
	for _, c := range s.clients {
		if c.HouseholdIncome == nil {
			continue
		}
		sum = sum.Add(*c.HouseholdIncome)
		n++
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(n))), nil
}

// CountAdultsAboveAverage ver repository.ReportRepository.
func (s *Store) CountAdultsAboveAverage(_ context.Context, since time.Time, average decimal.Decimal, today time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.clients {
		if c.RegistrationDate.Before(since) || c.HouseholdIncome == nil {
			continue
		}
		if c.HouseholdIncome.GreaterThan(average) && period.AgeOn(c.BirthDate, today) >= 18 {
			n++
		}
	}
	return n, nil
}

// CountByBand ver repository.ReportRepository.
func (s *Store) CountByBand(_ context.Context, since time.Time) (income.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts income.Counts
	for _, c := range s.clients {
		if c.RegistrationDate.Before(since) {
			continue
		}
		counts.Add(income.Classify(c.HouseholdIncome))
	}
	return counts, nil
}

func (s *Store) idNumberTaken(idNumber string, exceptID int64) bool {
	for id, c := range s.clients {
		if id != exceptID && c.IDNumber == idNumber {
			return true
		}
	}
	return false
}

func cloneClient(c entity.Client) *entity.Client {
	if c.HouseholdIncome != nil {
		v := *c.HouseholdIncome
		c.HouseholdIncome = &v
	}
	return &c
}
