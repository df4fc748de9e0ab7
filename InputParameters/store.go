package InputParameters

import (
	"sync"
	"sync/atomic"
)

// Snapshot is an immutable, versioned configuration. Callers must not
// modify Packet.
type Snapshot struct {
	Version uint64
	Packet  *ConfigPacket
}

// Store publishes configuration snapshots. Readers never see a packet that
// has not passed validation; writers replace, never mutate.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes writers so versions are unique
}

func NewStore(initial *ConfigPacket) (s *Store, err error) {
	s = &Store{}
	if initial == nil {
		initial = DefaultConfigPacket()
	}
	if _, err = s.Update(initial); err != nil {
		return nil, err
	}
	return
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Update validates a copy of cp and publishes it as the next version. On
// error the current snapshot is unchanged.
func (s *Store) Update(cp *ConfigPacket) (snap *Snapshot, err error) {
	var (
		c = cp.Clone()
	)
	if err = c.Validate(); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		version uint64 = 1
	)
	if prev := s.current.Load(); prev != nil {
		version = prev.Version + 1
	}
	snap = &Snapshot{Version: version, Packet: c}
	s.current.Store(snap)
	return
}

// LoadFile reads fileName and publishes it.
func (s *Store) LoadFile(fileName string) (snap *Snapshot, err error) {
	var (
		cp *ConfigPacket
	)
	if cp, err = Load(fileName); err != nil {
		return
	}
	return s.Update(cp)
}

func (s *Store) SaveFile(fileName string) error {
	return s.Current().Packet.Save(fileName)
}
