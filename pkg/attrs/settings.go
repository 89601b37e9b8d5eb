package attrs

// Setting is one keyword setting attached to a node.
type Setting struct {
	Key   string
	Value any
}

// Settings is an insertion-ordered keyword bag. Setting a key that is
// already present replaces its value without moving it.
// The zero value is an empty bag ready to use.
type Settings struct {
	entries []Setting
}

// NewSettings builds a bag from settings applied in order.
func NewSettings(settings ...Setting) Settings {
	var s Settings
	for _, setting := range settings {
		s.Set(setting.Key, setting.Value)
	}
	return s
}

// Set stores value under key.
func (s *Settings) Set(key string, value any) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, Setting{Key: key, Value: value})
}

// Get returns the value stored under key.
func (s Settings) Get(key string) (any, bool) {
	for _, e := range s.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Delete removes key, keeping the order of the remaining entries.
func (s *Settings) Delete(key string) {
	for i, e := range s.entries {
		if e.Key == key {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of settings.
func (s Settings) Len() int { return len(s.entries) }

// Entries returns a copy of the settings in order.
func (s Settings) Entries() []Setting {
	out := make([]Setting, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clone returns an independent copy of s.
func (s Settings) Clone() Settings {
	return Settings{entries: s.Entries()}
}

// Merge returns a copy of s with overrides applied in order.
func (s Settings) Merge(overrides ...Setting) Settings {
	merged := s.Clone()
	for _, o := range overrides {
		merged.Set(o.Key, o.Value)
	}
	return merged
}
