package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
)

// RefreshParts recarga el catálogo unificando la tabla parts con las tablas
// legadas por fabricante. Una tabla que falla se loguea y se omite: el
// catálogo degrada a parcial, nunca a error.
//
// Deduplicación: primero por ID, después por (code, manufacturer); en ambos
// casos gana la primera aparición, y la tabla unificada se lee primero.
func (s *Store) RefreshParts() {
	var merged []entity.Part

	unified, err := s.partRepo.List()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la tabla unificada de piezas")
	}
	merged = append(merged, unified...)

	astera, err := s.legacyRepo.ListAstera()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer astera_parts")
	}
	merged = append(merged, astera...)

	cream, err := s.legacyRepo.ListCreamSource()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer cream_source_parts")
	}
	merged = append(merged, cream...)

	deduped := dedupeParts(merged)
	sort.SliceStable(deduped, func(i, j int) bool {
		return strings.ToLower(deduped[i].Name) < strings.ToLower(deduped[j].Name)
	})

	s.mu.Lock()
	s.parts = deduped
	s.mu.Unlock()
	s.notify(EventParts)
}

func dedupeParts(parts []entity.Part) []entity.Part {
	seenID := make(map[string]bool, len(parts))
	seenKey := make(map[string]bool, len(parts))
	out := make([]entity.Part, 0, len(parts))
	for _, p := range parts {
		if p.ID != "" && seenID[p.ID] {
			continue
		}
		key := p.Code + "|" + p.Manufacturer
		if p.Code != "" && seenKey[key] {
			continue
		}
		if p.ID != "" {
			seenID[p.ID] = true
		}
		if p.Code != "" {
			seenKey[key] = true
		}
		out = append(out, p)
	}
	return out
}

// Parts devuelve una copia del catálogo.
func (s *Store) Parts() []entity.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// PartByID busca una pieza en memoria. Retorna (zero, false) si no está.
func (s *Store) PartByID(id string) (entity.Part, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parts {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Part{}, false
}

// AddPart agrega la pieza a memoria primero (optimista) y después persiste.
// Si la persistencia falla, se revierte la memoria y se devuelve el error.
func (s *Store) AddPart(p entity.Part) error {
	s.mu.Lock()
	s.parts = append(s.parts, p)
	s.mu.Unlock()
	s.notify(EventParts)

	if err := s.partRepo.Create(&p); err != nil {
		s.mu.Lock()
		for i := range s.parts {
			if s.parts[i].ID == p.ID {
				s.parts = append(s.parts[:i], s.parts[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		s.notify(EventParts)
		return fmt.Errorf("persistir pieza: %w", err)
	}
	return nil
}

// UpdatePart reemplaza la pieza en memoria (optimista) y después persiste.
// Si la persistencia falla, se recarga el catálogo completo desde la base.
func (s *Store) UpdatePart(p entity.Part) error {
	s.mu.Lock()
	found := false
	for i := range s.parts {
		if s.parts[i].ID == p.ID {
			s.parts[i] = p
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return domain.ErrNotFound
	}
	s.notify(EventParts)

	if err := s.partRepo.Update(&p); err != nil {
		s.RefreshParts()
		return fmt.Errorf("persistir pieza: %w", err)
	}
	return nil
}
