package qrtests

// Identity is the account that requests are currently made as.
type Identity struct {
	Email  string
	UserID string
	Token  string

	// Fresh is true for an identity this run signed up, which is known to be on the free plan
	// with no resources yet.
	Fresh bool
}

// TrackedResource is a QR code this run created and has not yet deleted.
type TrackedResource struct {
	ID        string
	Slug      string
	Name      string
	Type      string
	Active    bool
	ScanCount int
}

// RunState is the state that scenarios share over the course of one run. Scenarios run one at a
// time, so it has no locking.
type RunState struct {
	session   *Identity
	resources []TrackedResource
	events    map[string]int
}

func NewRunState() *RunState {
	return &RunState{events: make(map[string]int)}
}

// Authenticate makes id the current identity, replacing any previous one.
func (s *RunState) Authenticate(id Identity) {
	s.session = &id
}

// Session returns the current identity, or ok=false if no one is authenticated.
func (s *RunState) Session() (Identity, bool) {
	if s.session == nil {
		return Identity{}, false
	}
	return *s.session, true
}

// Token returns the bearer token of the current identity, or "" if no one is authenticated.
func (s *RunState) Token() string {
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

func (s *RunState) IsAuthenticated() bool {
	return s.session != nil && s.session.Token != ""
}

func (s *RunState) HasFreshIdentity() bool {
	return s.IsAuthenticated() && s.session.Fresh
}

func (s *RunState) Logout() {
	s.session = nil
}

// swapSession makes id the current identity and returns a function that puts the previous
// one back.
func (s *RunState) swapSession(id Identity) (restore func()) {
	previous := s.session
	s.Authenticate(id)
	return func() {
		s.session = previous
	}
}

// Track appends a newly created resource to the tracked set.
func (s *RunState) Track(r TrackedResource) {
	s.resources = append(s.resources, r)
}

// Untrack removes the resource with the given ID. It returns false if no such resource was
// tracked.
func (s *RunState) Untrack(id string) bool {
	for i, r := range s.resources {
		if r.ID == id {
			s.resources = append(s.resources[:i:i], s.resources[i+1:]...)
			delete(s.events, r.Slug)
			return true
		}
	}
	return false
}

// Update replaces the tracked record that has the same ID as r.
func (s *RunState) Update(r TrackedResource) bool {
	for i := range s.resources {
		if s.resources[i].ID == r.ID {
			s.resources[i] = r
			return true
		}
	}
	return false
}

// Resources returns a copy of the tracked set in creation order.
func (s *RunState) Resources() []TrackedResource {
	return append([]TrackedResource(nil), s.resources...)
}

// First returns the earliest tracked resource that is still present.
func (s *RunState) First() (TrackedResource, bool) {
	if len(s.resources) == 0 {
		return TrackedResource{}, false
	}
	return s.resources[0], true
}

// Last returns the most recently tracked resource.
func (s *RunState) Last() (TrackedResource, bool) {
	if len(s.resources) == 0 {
		return TrackedResource{}, false
	}
	return s.resources[len(s.resources)-1], true
}

func (s *RunState) HasResources() bool {
	return len(s.resources) != 0
}

// HasActiveResource is true if the first tracked resource is still active. Reads by slug use
// the first resource, and the public lookup only serves active codes.
func (s *RunState) HasActiveResource() bool {
	r, ok := s.First()
	return ok && r.Active
}

// RecordEvent counts an analytics event that was accepted for the resource with this slug.
func (s *RunState) RecordEvent(slug string) {
	s.events[slug]++
}

// EventCount returns how many analytics events were accepted for this slug.
func (s *RunState) EventCount(slug string) int {
	return s.events[slug]
}

// HasEvents is true if any events were recorded for the first tracked resource.
func (s *RunState) HasEvents() bool {
	r, ok := s.First()
	return ok && s.events[r.Slug] > 0
}
