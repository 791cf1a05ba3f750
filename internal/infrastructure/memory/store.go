// Package memory implementa los puertos de persistencia en memoria.
// Sirve para desarrollo local (STORAGE_DRIVER=memory) y para tests.
// Las transacciones trabajan sobre una copia del estado que se publica solo en Commit.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	locations   map[string]entity.Location
	censuses    map[string]entity.Census
	lineItems   map[string]map[string]entity.CensusLineItem // censusID -> itemID -> línea
	masterItems map[string]entity.MasterItem
	users       map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func newState() *state {
	return &state{
		locations:   map[string]entity.Location{},
		censuses:    map[string]entity.Census{},
		lineItems:   map[string]map[string]entity.CensusLineItem{},
		masterItems: map[string]entity.MasterItem{},
		users:       map[string]entity.User{},
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.locations {
		out.locations[k] = v
	}
	for k, v := range s.censuses {
		v.Committee = append([]string(nil), v.Committee...)
		out.censuses[k] = v
	}
	for cid, items := range s.lineItems {
		m := make(map[string]entity.CensusLineItem, len(items))
		for k, v := range items {
			m[k] = v
		}
		out.lineItems[cid] = m
	}
	for k, v := range s.masterItems {
		out.masterItems[k] = v
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	return out
}

// Los strings que llegan a los repositorios pueden apuntar a buffers reutilizados
// (parámetros de ruta de fasthttp sin Immutable). Todo lo que se guarda, claves incluidas,
// es una copia propia del almacén.

func ownLocation(l entity.Location) entity.Location {
	l.ID = strings.Clone(l.ID)
	l.Name = strings.Clone(l.Name)
	l.ResponsiblePerson = strings.Clone(l.ResponsiblePerson)
	return l
}

func ownCensus(c entity.Census) entity.Census {
	c.ID = strings.Clone(c.ID)
	c.LocationID = strings.Clone(c.LocationID)
	c.Status = strings.Clone(c.Status)
	committee := make([]string, len(c.Committee))
	for i, name := range c.Committee {
		committee[i] = strings.Clone(name)
	}
	c.Committee = committee
	return c
}

func ownLineItem(it entity.CensusLineItem) entity.CensusLineItem {
	it.ID = strings.Clone(it.ID)
	it.CensusID = strings.Clone(it.CensusID)
	it.MasterItemID = strings.Clone(it.MasterItemID)
	it.Name = strings.Clone(it.Name)
	it.Unit = strings.Clone(it.Unit)
	it.Notes = strings.Clone(it.Notes)
	return it
}

func ownMasterItem(m entity.MasterItem) entity.MasterItem {
	m.ID = strings.Clone(m.ID)
	m.Name = strings.Clone(m.Name)
	m.Unit = strings.Clone(m.Unit)
	m.CurrentLocationID = strings.Clone(m.CurrentLocationID)
	return m
}

func ownUser(u entity.User) entity.User {
	u.ID = strings.Clone(u.ID)
	u.Email = strings.Clone(u.Email)
	u.PasswordHash = strings.Clone(u.PasswordHash)
	u.Name = strings.Clone(u.Name)
	u.Role = strings.Clone(u.Role)
	u.Status = strings.Clone(u.Status)
	return u
}

// view da acceso al estado: fuera de una transacción toma el lock por operación;
// dentro, trabaja sobre la copia privada de la transacción (el lock ya lo tiene Run).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.state)
}

// write igual que read; se separa para dejar explícitas las mutaciones.
func (v view) write(fn func(st *state) error) error {
	return v.read(fn)
}

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{v: view{store: s}} }

// Censuses devuelve el repositorio de censos.
func (s *Store) Censuses() *CensusRepo { return &CensusRepo{v: view{store: s}} }

// LineItems devuelve el repositorio de líneas de censo.
func (s *Store) LineItems() *LineItemRepo { return &LineItemRepo{v: view{store: s}} }

// MasterItems devuelve el repositorio del catálogo.
func (s *Store) MasterItems() *MasterItemRepo { return &MasterItemRepo{v: view{store: s}} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{store: s}} }

// Run ejecuta fn con repositorios atados a una copia del estado y la publica si fn no falla.
// Las transacciones se serializan entre sí y con las operaciones sueltas.
func (s *Store) Run(ctx context.Context, fn func(
	censusRepo repository.CensusRepository,
	itemRepo repository.LineItemRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	v := view{store: s, tx: tx}
	if err := fn(&CensusRepo{v: v}, &LineItemRepo{v: v}); err != nil {
		return err
	}
	s.state = tx
	return nil
}
