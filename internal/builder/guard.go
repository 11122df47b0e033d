package builder

// passToken identifies one top-level run of the configuration pass. A nested
// invocation arriving while a token is outstanding is collapsed to a no-op
// rather than queued: the outer pass re-consults the shared registries later
// in its own run, so it observes any state the nested trigger would have
// acted on.
type passToken struct {
	id uint64
}

// passGuard issues at most one outstanding pass token at a time.
type passGuard struct {
	active *passToken
	nextID uint64
}

// acquire returns a fresh token, or false when a pass already holds one.
func (g *passGuard) acquire() (*passToken, bool) {
	if g.active != nil {
		return nil, false
	}
	g.nextID++
	token := &passToken{id: g.nextID}
	g.active = token
	return token, true
}

// release returns the token, re-arming the guard. Releasing a stale token is
// a no-op.
func (g *passGuard) release(token *passToken) {
	if g.active == token {
		g.active = nil
	}
}
