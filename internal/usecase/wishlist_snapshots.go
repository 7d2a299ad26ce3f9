package usecase

import "sync"

// maxIdleWishlists — сколько снимков без активной подписки держится в памяти.
const maxIdleWishlists = 1024

type memberSet struct {
	members map[string]struct{}
	subs    int
	seq     uint64
}

type idleRef struct {
	userID string
	seq    uint64
}

// memberSnapshots хранит последние загруженные вишлисты для IsMember.
// Снимок пользователя с подпиской живет до ее окончания, остальные вытесняются
// в порядке загрузки сверх limit.
type memberSnapshots struct {
	mu    sync.RWMutex
	limit int
	seq   uint64
	sets  map[string]*memberSet
	idle  []idleRef
}

func newMemberSnapshots(limit int) *memberSnapshots {
	return &memberSnapshots{
		limit: limit,
		sets:  make(map[string]*memberSet),
	}
}

func (s *memberSnapshots) has(userID, productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[userID]
	if !ok {
		return false
	}
	_, ok = set.members[productID]
	return ok
}

// store заменяет снимок пользователя целиком.
func (s *memberSnapshots) store(userID string, members map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.get(userID)
	set.members = members
	s.touch(userID, set)
}

// set меняет одно членство после переключения.
func (s *memberSnapshots) set(userID, productID string, member bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.get(userID)
	if member {
		set.members[productID] = struct{}{}
	} else {
		delete(set.members, productID)
	}
	s.touch(userID, set)
}

// acquire закрепляет снимок за подпиской.
func (s *memberSnapshots) acquire(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(userID).subs++
}

// release снимает закрепление. Снимок без подписок удаляется.
func (s *memberSnapshots) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[userID]
	if !ok {
		return
	}
	if set.subs > 0 {
		set.subs--
	}
	if set.subs == 0 {
		delete(s.sets, userID)
	}
}

func (s *memberSnapshots) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

func (s *memberSnapshots) get(userID string) *memberSet {
	set, ok := s.sets[userID]
	if !ok {
		set = &memberSet{members: make(map[string]struct{})}
		s.sets[userID] = set
	}
	return set
}

func (s *memberSnapshots) touch(userID string, set *memberSet) {
	s.seq++
	set.seq = s.seq
	if set.subs > 0 {
		return
	}

	s.idle = append(s.idle, idleRef{userID: userID, seq: set.seq})
	for len(s.idle) > s.limit {
		ref := s.idle[0]
		s.idle = s.idle[1:]

		// устаревшая ссылка: снимок перезагружен позже или закреплен подпиской
		if old, ok := s.sets[ref.userID]; ok && old.subs == 0 && old.seq == ref.seq {
			delete(s.sets, ref.userID)
		}
	}
}
