package repository

import (
	"sort"
	"sync"
	"time"

	"mclink/internal/models"
)

// In-memory backends for both stores. They satisfy the same contracts
// as the Postgres implementations and take an injectable clock, which
// makes them the storage used by the service tests and by local runs
// without a database.

type MemoryLinkStore struct {
	mu    sync.RWMutex
	links map[string]models.LinkRecord // minecraft_uuid -> record
	now   func() time.Time
}

func NewMemoryLinkStore(now func() time.Time) *MemoryLinkStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryLinkStore{
		links: make(map[string]models.LinkRecord),
		now:   now,
	}
}

func (s *MemoryLinkStore) IsLinked(minecraftUUID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.links[minecraftUUID]
	return ok
}

func (s *MemoryLinkStore) FindByMinecraftUUID(minecraftUUID string) *models.LinkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[minecraftUUID]
	if !ok {
		return nil
	}
	return &link
}

func (s *MemoryLinkStore) FindByDiscordID(discordID string) []models.LinkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var links []models.LinkRecord
	for _, link := range s.links {
		if link.DiscordID == discordID {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].LinkedAt.After(links[j].LinkedAt)
	})
	return links
}

func (s *MemoryLinkStore) CountByDiscordID(discordID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, link := range s.links {
		if link.DiscordID == discordID {
			count++
		}
	}
	return count
}

func (s *MemoryLinkStore) Create(link models.LinkRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	link.UpdatedAt = s.now()
	s.links[link.MinecraftUUID] = link
	return true
}

func (s *MemoryLinkStore) Update(link models.LinkRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.links[link.MinecraftUUID]
	if !ok {
		return false
	}
	link.LinkedAt = existing.LinkedAt
	link.UpdatedAt = s.now()
	s.links[link.MinecraftUUID] = link
	return true
}

func (s *MemoryLinkStore) Delete(minecraftUUID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[minecraftUUID]; !ok {
		return false
	}
	delete(s.links, minecraftUUID)
	return true
}

func (s *MemoryLinkStore) DeleteByDiscordID(discordID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for uuid, link := range s.links {
		if link.DiscordID == discordID {
			delete(s.links, uuid)
			count++
		}
	}
	return count
}

func (s *MemoryLinkStore) FindAll() []models.LinkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := make([]models.LinkRecord, 0, len(s.links))
	for _, link := range s.links {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].LinkedAt.After(links[j].LinkedAt)
	})
	return links
}

type MemoryCodeStore struct {
	mu    sync.RWMutex
	codes map[string]models.VerificationCode // code -> row
	now   func() time.Time
}

func NewMemoryCodeStore(now func() time.Time) *MemoryCodeStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryCodeStore{
		codes: make(map[string]models.VerificationCode),
		now:   now,
	}
}

func (s *MemoryCodeStore) Create(code models.VerificationCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.Code] = code
	return true
}

func (s *MemoryCodeStore) FindValid(code string) *models.VerificationCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vc, ok := s.codes[code]
	if !ok || vc.IsExpired(s.now()) {
		return nil
	}
	return &vc
}

func (s *MemoryCodeStore) FindPending(minecraftUUID string) *models.VerificationCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var newest *models.VerificationCode
	for _, vc := range s.codes {
		if vc.MinecraftUUID != minecraftUUID || vc.IsExpired(s.now()) {
			continue
		}
		if newest == nil || vc.CreatedAt.After(newest.CreatedAt) {
			vc := vc
			newest = &vc
		}
	}
	return newest
}

func (s *MemoryCodeStore) Delete(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[code]; !ok {
		return false
	}
	delete(s.codes, code)
	return true
}

func (s *MemoryCodeStore) DeleteByMinecraftUUID(minecraftUUID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for code, vc := range s.codes {
		if vc.MinecraftUUID == minecraftUUID {
			delete(s.codes, code)
			count++
		}
	}
	return count
}

func (s *MemoryCodeStore) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for code, vc := range s.codes {
		if vc.IsExpired(s.now()) {
			delete(s.codes, code)
			count++
		}
	}
	return count
}

func (s *MemoryCodeStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codes[code]
	return ok
}
